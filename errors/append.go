package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// The returned error reports the ABCI code of the first non nil error and is
// of a kind of every clubbed error (see Error.Is).
func Append(errs ...error) error {
	var flat []error
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			flat = append(flat, m...)
		} else {
			flat = append(flat, err)
		}
	}
	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	}
	return multiErr(flat)
}

type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, err := range m {
		msgs[i] = "* " + err.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(m), strings.Join(msgs, "\n\t"))
}

// ABCICode returns the code of the first clubbed error.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}

// Unpack returns all clubbed errors.
func (m multiErr) Unpack() []error {
	return m
}

type unpacker interface {
	Unpack() []error
}
