/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object under the "_c:<package>"
key. It is loaded from the "conf" section of the genesis file and read by
handlers at runtime.
*/
package gconf
