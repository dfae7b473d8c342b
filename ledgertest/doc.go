/*
Package ledgertest provides helpers and mocks for testing extensions and
the application: keys, authenticators, handlers, decorators, stores and an
ABCI runner with a controllable block clock.
*/
package ledgertest
