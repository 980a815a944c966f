// Package errs defines the error kinds shared between the core package
// and internal/language, so both can construct and inspect them without
// an import cycle (the root package depends on internal/language, which
// must not depend back on the root package).
package errs

import errorutil "github.com/projectdiscovery/utils/errors"

// Kind enumerates the error categories from spec.md §7. The core never
// retries, logs, or suppresses any of these; it returns them verbatim at
// the Process boundary.
type Kind int

const (
	// InvalidEncoding: input bytes are not valid UTF-8.
	InvalidEncoding Kind = iota
	// InvalidConfiguration: a language configuration failed validation
	// (empty language code, unparseable suppression regex, duplicate
	// enclosure character).
	InvalidConfiguration
	// TooManyEnclosureTypes: a language declares more than deltavec.MaxTypes
	// distinct enclosure types.
	TooManyEnclosureTypes
	// Io: reading from a file or stream failed.
	Io
)

func (k Kind) String() string {
	switch k {
	case InvalidEncoding:
		return "InvalidEncoding"
	case InvalidConfiguration:
		return "InvalidConfiguration"
	case TooManyEnclosureTypes:
		return "TooManyEnclosureTypes"
	case Io:
		return "Io"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with the underlying cause, tagged per the teacher's
// errorutil convention so it is both errors.Is/As-compatible (via Unwrap)
// and carries a stable tag for log correlation.
type Error struct {
	Kind  Kind
	cause error
	// wrapped is the original error handed to Wrap (nil for New).
	wrapped error
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, cause: errorutil.NewWithTag("boundaryx", "%s", msg)}
}

func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: errorutil.NewWithTag("boundaryx", "%s", cause.Error()), wrapped: cause}
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.cause.Error()
}

// Unwrap exposes the tagged error and, for errors built by Wrap, the
// original cause, so errors.Is/As can reach either.
func (e *Error) Unwrap() []error {
	if e.wrapped == nil {
		return []error{e.cause}
	}
	return []error{e.cause, e.wrapped}
}
