package repository

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"PriceSampler/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, src models.Source) ([]models.Row, error) {
	t.Helper()
	stream, err := NewCSVSourceReader().Open(context.Background(), src)
	if err != nil {
		return nil, err
	}
	defer stream.Close()
	var rows []models.Row
	for {
		row, err := stream.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

func TestCSVSourceReaderStreamsRows(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ASH.csv",
		"ASH,01-09-2023,16240.00",
		"ASH,02-09-2023,16321.20",
		"ASH,03-09-2023,16402.81",
	)

	rows, err := drain(t, models.Source{ID: "ASH", Path: path})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.Row{"ASH", "02-09-2023", "16321.20"}, rows[1])
}

func TestCSVSourceReaderEmptyFileEndsCleanly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "EMPTY.csv")
	rows, err := drain(t, models.Source{ID: "EMPTY", Path: path})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCSVSourceReaderRaggedRowIsParseError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "BAD.csv",
		"BAD,01-09-2023,1.0",
		"BAD,02-09-2023",
	)
	rows, err := drain(t, models.Source{ID: "BAD", Path: path})
	assert.ErrorIs(t, err, models.ErrSourceParse)
	assert.Len(t, rows, 1)
}

func TestCSVSourceReaderBareQuoteIsParseError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Q.csv", `Q,"01-09"-2023,1.0`)
	_, err := drain(t, models.Source{ID: "Q", Path: path})
	assert.ErrorIs(t, err, models.ErrSourceParse)
}

func TestCSVSourceReaderMissingFile(t *testing.T) {
	_, err := NewCSVSourceReader().Open(context.Background(), models.Source{Path: filepath.Join(t.TempDir(), "nope.csv")})
	assert.ErrorIs(t, err, models.ErrSourceParse)
}

func TestCSVSourceReaderStopsOnCancel(t *testing.T) {
	path := writeFile(t, t.TempDir(), "C.csv", "C,1,1", "C,2,2")
	ctx, cancel := context.WithCancel(context.Background())
	stream, err := NewCSVSourceReader().Open(ctx, models.Source{Path: path})
	require.NoError(t, err)
	defer stream.Close()

	cancel()
	_, err = stream.Next()
	assert.ErrorIs(t, err, context.Canceled)
}
