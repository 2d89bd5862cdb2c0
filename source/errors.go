package source

import "fmt"

// ============================================================================
// ERROR TAXONOMY
// ============================================================================
// FetchError — network / timeout / HTTP-status failure. Fatal to the
//              dataset; surfaced to the caller, never retried here.
// ParseError — schema mismatch or unreadable content. Fatal.
// Both wrap their cause for errors.As / errors.Is.
// ============================================================================

// FetchError reports a failed retrieval of a remote or local source.
type FetchError struct {
	Source     string // dataset name
	Location   string // URL or file path
	StatusCode int    // non-zero for HTTP status failures
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s from %s: HTTP %d", e.Source, e.Location, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s from %s: %v", e.Source, e.Location, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports malformed or schema-incompatible content.
type ParseError struct {
	Source string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Source, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
