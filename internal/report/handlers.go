package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tkarev/backend-sales/internal/common"
	"github.com/tkarev/backend-sales/internal/obs"
)

// Handler exposes the sales report endpoints.
type Handler struct {
	Svc          *Service
	Log          zerolog.Logger
	MaxBodyBytes int64
}

// Generate runs the sales analysis over the posted dataset.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "REPORT_NOT_CONFIGURED", "report service not configured", nil)
		return
	}
	if h.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.JSONError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "request body exceeds limit", nil)
			return
		}
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON payload", nil)
		return
	}

	start := time.Now()
	resp, err := h.Svc.Generate(req)
	if err != nil {
		h.countReport("error")
		if appErr, ok := common.AsAppError(err); ok {
			h.Log.Warn().Err(err).Str("code", appErr.Code).Msg("report rejected")
			common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
			return
		}
		h.Log.Error().Err(err).Msg("report failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "report generation failed", nil)
		return
	}

	h.countReport("ok")
	if obs.ReportSellersRanked != nil {
		obs.ReportSellersRanked.Observe(float64(len(resp.Data)))
	}
	h.Log.Info().
		Str("report_id", resp.ReportID).
		Int("sellers", len(resp.Data)).
		Int("purchase_records", len(req.PurchaseRecords)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("report generated")

	common.JSON(w, http.StatusOK, resp)
}

// Strategies lists the strategy names the registry can resolve.
func (h *Handler) Strategies(w http.ResponseWriter, _ *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "REPORT_NOT_CONFIGURED", "report service not configured", nil)
		return
	}
	registry := h.Svc.Registry()
	common.JSONData(w, http.StatusOK, map[string][]string{
		"revenue": registry.RevenueNames(),
		"bonus":   registry.BonusNames(),
	})
}

func (h *Handler) countReport(result string) {
	if obs.ReportsTotal != nil {
		obs.ReportsTotal.WithLabelValues(result).Inc()
	}
}
