package models

import "errors"

var (
	ErrGroupUnavailable = errors.New("group directory unavailable")
	ErrGroupEmpty       = errors.New("group has no sources")
	ErrSourceTooShort   = errors.New("source too short")
	ErrSourceParse      = errors.New("source parse failed")
	ErrArtifactWrite    = errors.New("artifact write failed")
	ErrInvalidPrice     = errors.New("invalid price")
)

// Client-facing diagnostic texts.
const (
	MsgGroupUnavailable = "Dir does not exist or is not accessible"
	MsgGroupEmpty       = "No files found"
	MsgSourceTooShort   = "File is empty or not enough data points"
	MsgSourceParse      = "Error parsing file"
	MsgArtifactWrite    = "Error writing CSV file"
)

// ParseError wraps a structural failure while reading a source.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse source: " + e.Err.Error() }

func (e *ParseError) Unwrap() []error { return []error{ErrSourceParse, e.Err} }

// DiagnosticMessage maps a sampling error to its client-facing text.
func DiagnosticMessage(err error) string {
	var pe *ParseError
	switch {
	case errors.Is(err, ErrGroupUnavailable):
		return MsgGroupUnavailable
	case errors.Is(err, ErrGroupEmpty):
		return MsgGroupEmpty
	case errors.Is(err, ErrSourceTooShort):
		return MsgSourceTooShort
	case errors.As(err, &pe):
		return MsgSourceParse + ": " + pe.Err.Error()
	default:
		return MsgSourceParse + ": " + err.Error()
	}
}
