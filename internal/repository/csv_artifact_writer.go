package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"PriceSampler/internal/domain/models"
	"PriceSampler/internal/domain/repository"
)

// CSVArtifactWriter writes CSV artifacts into a single output directory.
type CSVArtifactWriter struct {
	dir string
}

func NewCSVArtifactWriter(dir string) repository.ArtifactWriter {
	return &CSVArtifactWriter{dir: dir}
}

func (w *CSVArtifactWriter) Write(ctx context.Context, name string, columns []models.Column, records []models.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeAtomic(w.dir, name, func(out io.Writer) error {
		cw := csv.NewWriter(out)
		if err := cw.Write(headerOf(columns)); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		line := make([]string, len(columns))
		for i, rec := range records {
			for j, col := range columns {
				line[j] = formatValue(rec[col.ID])
			}
			if err := cw.Write(line); err != nil {
				return fmt.Errorf("write record %d: %w", i, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
		return nil
	})
}

func headerOf(columns []models.Column) []string {
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Title
	}
	return header
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
