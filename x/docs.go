/*
Package x contains the shared pieces of the extensions.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together by the application. This package
holds the authentication contract every extension relies on.
*/
package x
