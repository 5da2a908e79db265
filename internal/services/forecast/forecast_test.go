package forecast

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"PriceSampler/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(n int) []models.Row {
	out := make([]models.Row, n)
	for i := range out {
		out[i] = models.Row{"TICK", strconv.Itoa(i), strconv.Itoa(100 + i)}
	}
	return out
}

func TestCalculateReferenceWindow(t *testing.T) {
	f, err := Calculate([]float64{10, 12, 11, 13, 9, 14, 8, 15, 7, 16})
	require.NoError(t, err)
	assert.Equal(t, 15.0, f.N1)
	assert.Equal(t, 15.5, f.N2)
	assert.Equal(t, 15.125, f.N3)
}

func TestCalculateUsesWindowOrderForLast(t *testing.T) {
	// last = 5 even though it is the smallest value.
	f, err := Calculate([]float64{20, 30, 5})
	require.NoError(t, err)
	assert.Equal(t, 20.0, f.N1)
	assert.Equal(t, 12.5, f.N2)
	assert.Equal(t, 18.125, f.N3)
}

func TestCalculateDoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestCalculateNeedsTwoPrices(t *testing.T) {
	_, err := Calculate([]float64{1})
	assert.Error(t, err)
	_, err = Calculate(nil)
	assert.Error(t, err)
}

func TestPrices(t *testing.T) {
	got, err := Prices([]models.Row{{"A", "d1", "10.5"}, {"A", "d2", " 11 "}})
	require.NoError(t, err)
	assert.Equal(t, []float64{10.5, 11}, got)

	_, err = Prices([]models.Row{{"A", "d1"}})
	assert.ErrorIs(t, err, models.ErrInvalidPrice)

	_, err = Prices([]models.Row{{"A", "d1", "n/a"}})
	assert.ErrorIs(t, err, models.ErrInvalidPrice)
}

func TestExtractWindowLengthAndBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for n := 10; n < 40; n++ {
		in := rows(n)
		for i := 0; i < 20; i++ {
			w, start, err := ExtractWindow(in, 10, rng.IntN)
			require.NoError(t, err)
			require.Len(t, w, 10)
			assert.GreaterOrEqual(t, start, 0)
			assert.LessOrEqual(t, start, n-10)
			assert.Equal(t, in[start], w[0])
			assert.Equal(t, in[start+9], w[9])
		}
	}
}

func TestExtractWindowExactSizeStartsAtZero(t *testing.T) {
	w, start, err := ExtractWindow(rows(10), 10, func(int) int {
		t.Fatal("random source must not be consulted")
		return 0
	})
	require.NoError(t, err)
	assert.Equal(t, 0, start)
	assert.Len(t, w, 10)
}

func TestExtractWindowTooShort(t *testing.T) {
	for _, n := range []int{0, 1, 9} {
		_, _, err := ExtractWindow(rows(n), 10, rand.IntN)
		assert.ErrorIs(t, err, models.ErrSourceTooShort)
	}
}

func TestExtractWindowPreservesOrder(t *testing.T) {
	w, start, err := ExtractWindow(rows(15), 10, func(int) int { return 3 })
	require.NoError(t, err)
	assert.Equal(t, 3, start)
	for i := range w {
		assert.Equal(t, strconv.Itoa(start+i), w[i][1])
	}
}
