package forecast

import (
	"fmt"

	"PriceSampler/internal/domain/models"
)

// ExtractWindow picks a random contiguous run of size rows.
// intn must return a uniform value in [0, n). The start index is drawn from
// [0, len(rows)-size), so it is always 0 when len(rows) == size.
// It returns models.ErrSourceTooShort when fewer than size rows exist.
func ExtractWindow(rows []models.Row, size int, intn func(n int) int) ([]models.Row, int, error) {
	if size <= 0 {
		return nil, 0, fmt.Errorf("window size must be positive, got %d", size)
	}
	if len(rows) < size {
		return nil, 0, models.ErrSourceTooShort
	}
	start := 0
	if span := len(rows) - size; span > 0 {
		start = intn(span)
	}
	window := make([]models.Row, size)
	copy(window, rows[start:start+size])
	return window, start, nil
}
