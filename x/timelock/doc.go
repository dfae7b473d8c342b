/*
Package timelock parks native value until a release time.

A lock is identified by a subject key. Both accounts of a lock live at
addresses derived from that key, so they have no private key:

  lock  holds the LockRecord and is owned by this extension
  vault holds the value and is owned by cash

The signer creating the lock pays for both reserves and becomes the
beneficiary. Anybody may fund the vault with a regular cash transfer. Once
the block time reaches the release time, anybody may submit a release that
moves everything above the vault reserve to the beneficiary. The vault is
kept, so it can be funded and released again.
*/
package timelock
