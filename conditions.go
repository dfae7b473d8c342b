package ledger

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/fluxur/ledger/errors"
)

const (
	// SigsExtension and Ed25519Type name the condition produced by a
	// verified ed25519 signature. Its address is the public key itself.
	SigsExtension = "sigs"
	Ed25519Type   = "ed25519"
)

// it must have (?s) flags, otherwise it errors when last section contains 0x20 (newline)
var perm = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition is a specially formatted array, containing
// information on who can authorize an action.
// It is of the format:
//
//   sprintf("%s/%s/%s", extension, type, data)
//
// A signature condition ("sigs/ed25519/<pubkey>") authorizes the account of
// that public key. Any other condition is a derivation proof: the extension
// is the program name, the type is the role tag and the data holds the
// remaining seeds followed by the nonce. It authorizes the derived address
// computed from those values.
type Condition []byte

func NewCondition(ext, typ string, data []byte) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// Parse will extract the sections from the Condition bytes
// and verify it is properly formatted.
func (c Condition) Parse() (string, string, []byte, error) {
	chunks := perm.FindSubmatch(c)
	if len(chunks) == 0 {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	// returns [all, match1, match2, match3]
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Address returns the account this condition authorizes. It returns nil
// for malformed conditions and for derivation proofs that do not produce an
// off curve address.
func (c Condition) Address() Address {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return nil
	}
	if ext == SigsExtension && typ == Ed25519Type {
		if len(data) != AddressLength {
			return nil
		}
		return Address(data).Clone()
	}
	addr := derivedDigest(ext, []byte(typ), data)
	if IsOnCurve(addr) {
		return nil
	}
	return addr
}

// Equals checks if two conditions are the same.
func (c Condition) Equals(b Condition) bool {
	return bytes.Equal(c, b)
}

// String returns a human readable string.
// We keep the extension and type in ascii and
// hex-encode the binary data.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// Validate returns an error if the Condition is not the proper format.
func (c Condition) Validate() error {
	if !perm.Match(c) {
		return errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return nil
}

func (c Condition) MarshalJSON() ([]byte, error) {
	var serialized string
	if c != nil {
		serialized = c.String()
	}
	return json.Marshal(serialized)
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	if enc == "" {
		*c = nil
		return nil
	}
	cond, err := parseCondition(enc)
	if err != nil {
		return err
	}
	*c = cond
	return nil
}

// parseCondition reads the human readable form produced by String.
func parseCondition(source string) (Condition, error) {
	args := strings.Split(source, "/")
	if len(args) != 3 {
		return nil, errors.Wrap(errors.ErrInput, "invalid condition format")
	}
	data, err := hex.DecodeString(args[2])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "malformed condition data: %s", err)
	}
	c := NewCondition(args[0], args[1], data)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
