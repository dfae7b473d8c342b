package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches a field name and an optional description to err. A nil err
// gives nil, so validation code can call it unconditionally.
//
// Field names follow Go naming. Nested attributes use dots (Lock.Subject)
// and slice elements their index (Signatures.0).
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &fieldError{name: name, desc: description, cause: err}
}

// AppendField adds the field error, if any, to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

// FieldErrors collects every error in err that was created with Field for
// the given name. Multi errors are searched in full, wrapped errors are
// followed through their causes.
func FieldErrors(err error, name string) []error {
	var found []error
	walkFields(err, func(e error, field string) {
		if field == name {
			found = append(found, e)
		}
	})
	return found
}

// walkFields calls fn for the outermost field error on every path through
// err. Errors nested below a field error are not visited.
func walkFields(err error, fn func(error, string)) {
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok {
			fn(err, f.Field())
			return
		}
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				walkFields(e, fn)
			}
			return
		}
		c, ok := err.(causer)
		if !ok {
			return
		}
		err = c.Cause()
	}
}

type fielder interface {
	Field() string
}

type fieldError struct {
	name  string
	desc  string
	cause error
}

func (e *fieldError) Error() string {
	if e.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", e.name, e.desc, e.cause)
	}
	return fmt.Sprintf("field %q: %s", e.name, e.cause)
}

func (e *fieldError) Cause() error  { return e.cause }
func (e *fieldError) Field() string { return e.name }
