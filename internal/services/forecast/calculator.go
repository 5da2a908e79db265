package forecast

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"PriceSampler/internal/domain/models"
)

// Calculate derives three placeholder predictions from a window of prices.
//
//	n1 = second-largest price
//	n2 = last + (n1 - last) / 2
//	n3 = n1 + (n2 - n1) / 4
//
// "last" is the final price in window order, not in sorted order.
func Calculate(prices []float64) (models.Forecast, error) {
	if len(prices) < 2 {
		return models.Forecast{}, fmt.Errorf("forecast needs at least 2 prices, got %d", len(prices))
	}
	sorted := slices.Clone(prices)
	slices.Sort(sorted)

	last := prices[len(prices)-1]
	n1 := sorted[len(sorted)-2]
	n2 := last + (n1-last)/2
	n3 := n1 + (n2-n1)/4
	return models.Forecast{N1: n1, N2: n2, N3: n3}, nil
}

// Prices extracts the price column of a window.
func Prices(window []models.Row) ([]float64, error) {
	out := make([]float64, 0, len(window))
	for i, row := range window {
		if len(row) <= models.PriceColumn {
			return nil, fmt.Errorf("row %d has %d fields: %w", i, len(row), models.ErrInvalidPrice)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[models.PriceColumn]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w: %v", i, models.ErrInvalidPrice, err)
		}
		out = append(out, v)
	}
	return out, nil
}
