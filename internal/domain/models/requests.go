package models

// SampleRequest is the body of both sampling endpoints.
type SampleRequest struct {
	InputValues int `query:"input_values" json:"input_values" validate:"required,gte=1"`
}

// PredictionResult lists the artifacts written for one request.
type PredictionResult struct {
	Artifacts []string `json:"CSV Files"`
}
