package repository

import (
	"context"
	"fmt"
	"io"

	"PriceSampler/internal/domain/models"
	"PriceSampler/internal/domain/repository"

	"github.com/xuri/excelize/v2"
)

// XLSXArtifactWriter writes each artifact as a single-sheet workbook.
type XLSXArtifactWriter struct {
	dir string
}

func NewXLSXArtifactWriter(dir string) repository.ArtifactWriter {
	return &XLSXArtifactWriter{dir: dir}
}

func (w *XLSXArtifactWriter) Write(ctx context.Context, name string, columns []models.Column, records []models.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col.Title
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			row[j] = rec[col.ID]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	return writeAtomic(w.dir, name, func(out io.Writer) error {
		_, err := f.WriteTo(out)
		return err
	})
}
