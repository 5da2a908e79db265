package models

import (
	"encoding/json"
	"errors"
)

// Group is a named partition of sources, one directory per market.
type Group struct {
	Name string
	Dir  string
}

// Source is one candidate file within a group.
type Source struct {
	ID    string // file name without extension
	Name  string // file name as listed
	Group string
	Path  string
}

// Row is one parsed record; field order follows the file.
type Row []string

// PriceColumn is the zero-based column holding the price.
const PriceColumn = 2

// Sample is the outcome of processing one source, or a group placeholder.
// Exactly one of Window and Err is set.
type Sample struct {
	SourceID string
	Group    string
	Window   []Row

	// Subject names the failing source file or group.
	Subject string
	Err     error
}

// NewSuccess builds a sample carrying a window.
func NewSuccess(src Source, window []Row) Sample {
	return Sample{SourceID: src.ID, Group: src.Group, Window: window}
}

// NewSourceFailure builds a per-source diagnostic.
func NewSourceFailure(src Source, err error) Sample {
	return Sample{SourceID: src.ID, Group: src.Group, Subject: src.Name, Err: err}
}

// NewGroupFailure builds a group placeholder.
func NewGroupFailure(group string, err error) Sample {
	return Sample{Group: group, Subject: group, Err: err}
}

// OK reports whether the sample carries a window.
func (s Sample) OK() bool { return s.Err == nil }

// IsGroupPlaceholder reports whether the sample stands for a whole group.
func (s Sample) IsGroupPlaceholder() bool {
	return errors.Is(s.Err, ErrGroupUnavailable) || errors.Is(s.Err, ErrGroupEmpty)
}

// Message is the diagnostic text of a failed sample.
func (s Sample) Message() string {
	if s.Err == nil {
		return ""
	}
	return DiagnosticMessage(s.Err)
}

// MarshalJSON renders successes as {"Stock-ID","Exchange","Data-Points"} and
// diagnostics as a single {subject: message} pair.
func (s Sample) MarshalJSON() ([]byte, error) {
	if !s.OK() {
		return json.Marshal(map[string]string{s.Subject: s.Message()})
	}
	return json.Marshal(struct {
		StockID    string `json:"Stock-ID"`
		Exchange   string `json:"Exchange"`
		DataPoints []Row  `json:"Data-Points"`
	}{s.SourceID, s.Group, s.Window})
}

// SampleSet aggregates every sample and placeholder of one request.
// Order carries no meaning.
type SampleSet []Sample

// Successes returns the samples that carry a window.
func (ss SampleSet) Successes() []Sample {
	out := make([]Sample, 0, len(ss))
	for _, s := range ss {
		if s.OK() {
			out = append(out, s)
		}
	}
	return out
}

// Diagnostics returns the failed samples and placeholders.
func (ss SampleSet) Diagnostics() []Sample {
	out := make([]Sample, 0)
	for _, s := range ss {
		if !s.OK() {
			out = append(out, s)
		}
	}
	return out
}
