// Package handlers contains the gin request handlers for the public API.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/swarakshak/vidhaan/internal/application/ask"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/prometheus"
	"github.com/swarakshak/vidhaan/pkg/errors"
)

// AskHandler serves legal question answering with session memory.
type AskHandler struct {
	svc     *ask.SessionService
	metrics *prometheus.AppMetrics
	log     logging.Logger
}

// NewAskHandler builds an AskHandler. metrics may be nil.
func NewAskHandler(svc *ask.SessionService, metrics *prometheus.AppMetrics, log logging.Logger) *AskHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &AskHandler{svc: svc, metrics: metrics, log: log}
}

type askRequest struct {
	Query     string `json:"query" binding:"required"`
	SessionID string `json:"session_id"`
}

// Ask answers a legal question. Refusals and no-source outcomes are valid
// answers and return 200 like any other result.
func (h *AskHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body"))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.Error(errors.New(errors.ErrCodeQueryEmpty, "query must not be empty"))
		return
	}

	var timer *prometheus.Timer
	if h.metrics != nil {
		timer = prometheus.NewTimer(h.metrics.QueryDuration.WithLabelValues())
	}

	resp, err := h.svc.Ask(c.Request.Context(), req.Query, req.SessionID)
	if err != nil {
		c.Error(err)
		return
	}
	if timer != nil {
		timer.ObserveDuration()
	}
	h.observe(resp)

	c.JSON(http.StatusOK, resp)
}

// ClearSession drops the conversation memory for a session.
func (h *AskHandler) ClearSession(c *gin.Context) {
	sessionID := c.Param("id")
	if err := h.svc.Clear(c.Request.Context(), sessionID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "cleared": true})
}

func (h *AskHandler) observe(resp ask.Response) {
	if h.metrics == nil {
		return
	}
	h.metrics.QueriesTotal.WithLabelValues(resp.Status, resp.Domain).Inc()
	if resp.Status == "refused" {
		h.metrics.RefusalsTotal.WithLabelValues(resp.Domain).Inc()
	}
	h.metrics.CitationsReturned.WithLabelValues().Observe(float64(len(resp.Citations)))
	h.metrics.EvidenceCoverage.WithLabelValues().Observe(resp.CoverageScore)
	h.metrics.ConfidenceScore.WithLabelValues().Observe(resp.Confidence)
}
