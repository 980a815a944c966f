package boundaryx

import "github.com/boundaryx/boundaryx/internal/errs"

// Kind and Error are re-exported from internal/errs so callers at the
// Process boundary never need to import an internal package to inspect
// an error's Kind (spec.md §7's four error categories).
type Kind = errs.Kind

const (
	InvalidEncoding       = errs.InvalidEncoding
	InvalidConfiguration  = errs.InvalidConfiguration
	TooManyEnclosureTypes = errs.TooManyEnclosureTypes
	Io                    = errs.Io
)

type Error = errs.Error
