package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleMarshalSuccess(t *testing.T) {
	s := NewSuccess(Source{ID: "ASH", Name: "ASH.csv", Group: "NYSE"}, []Row{{"ASH", "01-01-2023", "10.5"}})

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Stock-ID":"ASH","Exchange":"NYSE","Data-Points":[["ASH","01-01-2023","10.5"]]}`, string(b))
}

func TestSampleMarshalDiagnostics(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		want   string
	}{
		{"group unavailable", NewGroupFailure("LSE", ErrGroupUnavailable), `{"LSE":"Dir does not exist or is not accessible"}`},
		{"group empty", NewGroupFailure("LSE", ErrGroupEmpty), `{"LSE":"No files found"}`},
		{"too short", NewSourceFailure(Source{ID: "A", Name: "A.csv"}, ErrSourceTooShort), `{"A.csv":"File is empty or not enough data points"}`},
		{"parse", NewSourceFailure(Source{ID: "B", Name: "B.csv"}, &ParseError{Err: errors.New("wrong number of fields")}), `{"B.csv":"Error parsing file: wrong number of fields"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.sample)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestParseErrorMatchesTaxonomy(t *testing.T) {
	err := fmt.Errorf("read: %w", &ParseError{Err: errors.New("bare quote")})
	assert.ErrorIs(t, err, ErrSourceParse)
	assert.Equal(t, "Error parsing file: bare quote", DiagnosticMessage(err))
}

func TestSampleSetPartitions(t *testing.T) {
	set := SampleSet{
		NewSuccess(Source{ID: "A", Group: "NYSE"}, []Row{{"a"}}),
		NewGroupFailure("LSE", ErrGroupEmpty),
		NewSourceFailure(Source{ID: "B", Name: "B.csv"}, ErrSourceTooShort),
	}

	assert.Len(t, set.Successes(), 1)
	assert.Len(t, set.Diagnostics(), 2)
	assert.True(t, set[1].IsGroupPlaceholder())
	assert.False(t, set[2].IsGroupPlaceholder())
}

func TestForecastRecords(t *testing.T) {
	recs := Forecast{N1: 15, N2: 15.5, N3: 15.125}.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "Predicted-n+1", recs[0]["Timestamp"])
	assert.Equal(t, 15.125, recs[2]["Stock Price"])
}
