/*
Package ledger defines the common interfaces that tie the ledger extensions
together, as well as implementations of the simpler shared components.

We pass context through context.Context between the app, decorators and
handlers. The ledger defines keys to store block level information in the
context, such as the header, height, chain id and logger. Each extension may
add its own keys, for example the signature verification puts the signer
conditions there.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set to avoid lower level modules
overwriting framework data.

Accounts are identified by 32 byte addresses. A signer address is its ed25519
public key. A derived address is computed from a program name and a list of
seeds and is guaranteed to not be a valid curve point, so no private key can
ever sign for it. See CreateDerivedAddress.
*/
package ledger
