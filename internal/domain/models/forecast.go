package models

import "time"

// Forecast holds the three extrapolated prices derived from one window.
type Forecast struct {
	N1 float64
	N2 float64
	N3 float64
}

// Prediction is one labeled output row.
type Prediction struct {
	Timestamp  string  `json:"Timestamp"`
	StockPrice float64 `json:"Stock Price"`
}

// Predictions returns the labeled rows in output order.
func (f Forecast) Predictions() []Prediction {
	return []Prediction{
		{Timestamp: "Predicted-n+1", StockPrice: f.N1},
		{Timestamp: "Predicted-n+2", StockPrice: f.N2},
		{Timestamp: "Predicted-n+3", StockPrice: f.N3},
	}
}

// Column maps a record field to its header title.
type Column struct {
	ID    string
	Title string
}

// Record is one uniformly-shaped output row keyed by column id.
type Record map[string]interface{}

// PredictionColumns is the artifact header.
var PredictionColumns = []Column{
	{ID: "Timestamp", Title: "Timestamp"},
	{ID: "Stock Price", Title: "Stock Price"},
}

// Records converts predictions into writer records.
func (f Forecast) Records() []Record {
	preds := f.Predictions()
	out := make([]Record, 0, len(preds))
	for _, p := range preds {
		out = append(out, Record{"Timestamp": p.Timestamp, "Stock Price": p.StockPrice})
	}
	return out
}

// ForecastEvent is published once per written artifact.
type ForecastEvent struct {
	ID          string       `json:"id"`
	StockID     string       `json:"stock_id"`
	Exchange    string       `json:"exchange"`
	Artifact    string       `json:"artifact"`
	Predictions []Prediction `json:"predictions"`
	GeneratedAt time.Time    `json:"generated_at"`
}
