package registry

import "fmt"

// Kind classifies a lookup failure. Every kind degrades to an empty
// result at the pipeline boundary; the enum exists so that policy is an
// explicit, testable mapping instead of a swallowed catch-all.
type Kind int

const (
	// KindTransport covers network errors, timeouts, and unexpected
	// HTTP status codes.
	KindTransport Kind = iota
	// KindParse covers responses that cannot be decoded.
	KindParse
	// KindNotFound covers well-formed envelopes reporting a
	// non-success status, no match, or an ambiguous match count.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	case KindNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by all registry lookups.
type Error struct {
	Err  error
	Op   string
	Kind Kind
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}
