package ledger

import "fmt"

// Release numbers of this ledger.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is injected at build time with
// -ldflags "-X github.com/fluxur/ledger.GitCommit=<sha>".
var GitCommit = ""

// Version returns the semantic version followed by the commit, when known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit == "" {
		return v
	}
	return v + " " + GitCommit
}
