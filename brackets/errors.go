package brackets

import "fmt"

// ResolutionErrorKind distinguishes the ways bracket data itself can be
// broken. Missing predictions or unplayed matches are never errors; they
// resolve to no team and propagate as such.
type ResolutionErrorKind string

const (
	// ErrKindUnknownMatch means a W/L code references a match number that
	// does not exist in the snapshot.
	ErrKindUnknownMatch ResolutionErrorKind = "unknown_match"
	// ErrKindForwardReference means a W/L code references its own match or
	// a later one, violating bracket ordering.
	ErrKindForwardReference ResolutionErrorKind = "forward_reference"
	// ErrKindDuplicateEntry means two matches share a sequence number, so
	// a W/L entry would be written twice in one resolution pass.
	ErrKindDuplicateEntry ResolutionErrorKind = "duplicate_entry"
)

// ResolutionError reports malformed bracket data, as opposed to data that
// is legitimately still unknown. Callers can show "TBD" for nil teams but
// should surface a ResolutionError.
type ResolutionError struct {
	Kind        ResolutionErrorKind
	Code        string
	MatchNumber int
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("bracket resolution: %s (code %q, match %d)", e.Kind, e.Code, e.MatchNumber)
}
