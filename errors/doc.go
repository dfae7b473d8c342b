/*
Package errors implements the error handling used across the ledger.

Every error returned by a handler must wrap one of the root errors declared
with Register. The root error decides the ABCI code returned to the client,
everything else is only a message:

	return errors.Wrapf(errors.ErrNotFound, "lock %s", addr)

	if errors.ErrNotFound.Is(err) {
		...
	}

Extensions declare their own root errors with codes above 1000. A stack trace
is attached on the first wrap and can be printed with %+v.
*/
package errors
