package api

import (
	"context"
	"errors"

	"PriceSampler/internal/domain/models"
	xhttp "PriceSampler/pkg/http"
	xlogger "PriceSampler/pkg/logger"

	"github.com/labstack/echo/v4"
)

type Sampler interface {
	Sample(ctx context.Context, k int) models.SampleSet
}

type ForecastBuilder interface {
	BuildForecasts(ctx context.Context, set models.SampleSet) ([]string, error)
}

// SamplingEchoHandler serves the sampling and prediction endpoints.
type SamplingEchoHandler struct {
	logger    *xlogger.Logger
	sampler   Sampler
	forecasts ForecastBuilder
}

func NewSamplingEchoHandler(logger *xlogger.Logger, sampler Sampler, forecasts ForecastBuilder) *SamplingEchoHandler {
	return &SamplingEchoHandler{logger: logger, sampler: sampler, forecasts: forecasts}
}

func (h *SamplingEchoHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/data-points", h.DataPoints)
	g.POST("/data-points", h.DataPoints)
	g.POST("/data-prediction", h.DataPrediction)
}

// DataPoints returns one window per selected source plus diagnostics.
func (h *SamplingEchoHandler) DataPoints(c echo.Context) error {
	req := &models.SampleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	set := h.sampler.Sample(c.Request().Context(), req.InputValues)
	return xhttp.SuccessResponse(c, set)
}

// DataPrediction samples, then writes one forecast artifact per success.
func (h *SamplingEchoHandler) DataPrediction(c echo.Context) error {
	req := &models.SampleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ctx := c.Request().Context()

	set := h.sampler.Sample(ctx, req.InputValues)
	names, err := h.forecasts.BuildForecasts(ctx, set)
	if err != nil {
		h.logger.Error("build forecasts failed", xlogger.Error(err))
		if errors.Is(err, models.ErrArtifactWrite) {
			return xhttp.AppErrorResponse(c, xhttp.InternalError(models.MsgArtifactWrite).WithError(err))
		}
		return xhttp.AppErrorResponse(c, xhttp.InternalError("Error building predictions").WithError(err))
	}
	return xhttp.SuccessResponse(c, models.PredictionResult{Artifacts: names})
}
