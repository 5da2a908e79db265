package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"PriceSampler/internal/domain/models"
	"PriceSampler/internal/domain/repository"
)

// CSVSourceReader streams rows out of CSV files. Rows must all have the
// field count of the first row.
type CSVSourceReader struct{}

func NewCSVSourceReader() repository.SourceReader {
	return &CSVSourceReader{}
}

func (r *CSVSourceReader) Open(ctx context.Context, src models.Source) (repository.RowStream, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, &models.ParseError{Err: err}
	}
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = 0
	return &csvRowStream{ctx: ctx, f: f, r: cr}, nil
}

type csvRowStream struct {
	ctx context.Context
	f   *os.File
	r   *csv.Reader
}

func (s *csvRowStream) Next() (models.Row, error) {
	if err := s.ctx.Err(); err != nil {
		return nil, &models.ParseError{Err: err}
	}
	rec, err := s.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, &models.ParseError{Err: err}
	}
	return models.Row(rec), nil
}

func (s *csvRowStream) Close() error {
	return s.f.Close()
}
