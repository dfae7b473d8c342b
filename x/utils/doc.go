/*
Package utils contains the decorators shared by every application: logging,
panic recovery, savepoints, action tagging and prometheus metrics.
*/
package utils
