package model

// Status distinguishes "still retrieving" from "resolved, zero results".
// A resolution that finds nothing after all fallback steps is not an error.
type Status int

const (
	// StatusPending means retrieval is still in flight.
	StatusPending Status = iota

	// StatusFound means at least one passage resolved.
	StatusFound

	// StatusNotFound means retrieval completed with zero passages.
	StatusNotFound
)

// String returns the lowercase name used in JSON output.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
