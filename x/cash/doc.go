/*
Package cash keeps the native unit balances.

Every address may hold one Account. An account is owned by the extension
that created it; only accounts owned by cash can be debited with Transfer,
so value parked in an account owned by another extension is out of reach.
Creating an account requires funding it with the reserve for the data it
will hold, see Configuration.MinimumBalance.
*/
package cash
