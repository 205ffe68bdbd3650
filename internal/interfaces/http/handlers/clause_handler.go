package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/swarakshak/vidhaan/internal/application/clause"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/prometheus"
	"github.com/swarakshak/vidhaan/pkg/errors"
)

// ClauseHandler serves NDA clause drafting and vetting.
type ClauseHandler struct {
	pipeline *clause.Pipeline
	metrics  *prometheus.AppMetrics
	log      logging.Logger
}

// NewClauseHandler builds a ClauseHandler. metrics may be nil.
func NewClauseHandler(pipeline *clause.Pipeline, metrics *prometheus.AppMetrics, log logging.Logger) *ClauseHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ClauseHandler{pipeline: pipeline, metrics: metrics, log: log}
}

type clauseRequest struct {
	Input    string           `json:"input" binding:"required"`
	Contract *clause.Contract `json:"contract"`
}

type clauseResponse struct {
	clause.Result
	Contract *clause.Contract `json:"contract"`
}

// Process runs one clause request through the drafting and vetting pipeline.
// The caller's contract is returned with the new clause appended when the
// clause was approved.
func (h *ClauseHandler) Process(c *gin.Context) {
	var req clauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body"))
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		c.Error(errors.New(errors.ErrCodeClauseIntentUnclear, "input must not be empty"))
		return
	}

	contract := req.Contract
	if contract == nil {
		contract = &clause.Contract{}
	}

	var timer *prometheus.Timer
	if h.metrics != nil {
		timer = prometheus.NewTimer(h.metrics.ClauseDuration.WithLabelValues())
	}

	result, err := h.pipeline.Process(c.Request.Context(), req.Input, contract)
	if err != nil {
		c.Error(err)
		return
	}
	if timer != nil {
		timer.ObserveDuration()
		h.metrics.ClauseRequestsTotal.WithLabelValues(result.Status).Inc()
	}

	c.JSON(http.StatusOK, clauseResponse{Result: result, Contract: contract})
}
