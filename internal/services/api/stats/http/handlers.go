// Package http provides http transport for stats
package http

import (
	stdhttp "net/http"

	"brewprints/internal/modkit/httpkit"
	"brewprints/internal/services/api/stats/domain"
	svc "brewprints/internal/services/api/stats/service"
)

// Register mounts stats endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// flag frequency in window
	httpkit.PostJSON[domain.FlagsInput](r, "/flags", h.flags)

	// sparge classification buckets
	httpkit.PostJSON[domain.SpargeMethodsInput](r, "/sparge-methods", h.spargeMethods)

	// reconciliation adjustments by day
	httpkit.PostJSON[domain.AdjustmentsInput](r, "/adjustments", h.adjustments)

	// evaporation resolution buckets
	httpkit.PostJSON[domain.EvapMethodsInput](r, "/evap-methods", h.evapMethods)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /stats/flags Stats statsFlags
// @Summary Most frequent diagnostic flags
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.FlagsInput true "Query"
// @Success 200 {array} domain.FlagRow "ok"
// @Router /stats/flags [post]
func (h *handlers) flags(r *stdhttp.Request, in domain.FlagsInput) (any, error) {
	return h.svc.Flags(r.Context(), in)
}

// swagger:route POST /stats/sparge-methods Stats statsSpargeMethods
// @Summary Sparge classification by method and confidence
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.SpargeMethodsInput true "Query"
// @Success 200 {array} domain.SpargeMethodRow "ok"
// @Router /stats/sparge-methods [post]
func (h *handlers) spargeMethods(r *stdhttp.Request, in domain.SpargeMethodsInput) (any, error) {
	return h.svc.SpargeMethods(r.Context(), in)
}

// swagger:route POST /stats/adjustments Stats statsAdjustments
// @Summary Reconciliation adjustments by day
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.AdjustmentsInput true "Query"
// @Success 200 {array} domain.AdjustmentRow "ok"
// @Router /stats/adjustments [post]
func (h *handlers) adjustments(r *stdhttp.Request, in domain.AdjustmentsInput) (any, error) {
	return h.svc.Adjustments(r.Context(), in)
}

// swagger:route POST /stats/evap-methods Stats statsEvapMethods
// @Summary Evaporation resolution by method
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.EvapMethodsInput true "Query"
// @Success 200 {array} domain.EvapMethodRow "ok"
// @Router /stats/evap-methods [post]
func (h *handlers) evapMethods(r *stdhttp.Request, in domain.EvapMethodsInput) (any, error) {
	return h.svc.EvapMethods(r.Context(), in)
}
