// Package http provides http transport for calc
package http

import (
	stdhttp "net/http"

	"brewprints/internal/modkit/httpkit"
	"brewprints/internal/services/api/calc/domain"
	svc "brewprints/internal/services/api/calc/service"
)

// Register mounts calc endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// the full water pipeline
	httpkit.PostJSON[domain.WaterInput](r, "/water", h.water)

	// sibling calculators sharing the call pipeline
	httpkit.PostJSON[domain.GravityInput](r, "/gravity", h.gravity)
	httpkit.PostJSON[domain.IBUInput](r, "/ibu", h.ibu)
	httpkit.PostJSON[domain.ColorInput](r, "/color", h.color)
	httpkit.PostJSON[domain.CarbonationInput](r, "/carbonation", h.carbonation)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /calc/water Calc calcWater
// @Summary Run the water volume pipeline on an inline recipe
// @Tags Calc
// @Accept json
// @Produce json
// @Param payload body domain.WaterInput true "Recipe and display unit"
// @Success 200 {object} domain.WaterReport "ok"
// @Router /calc/water [post]
func (h *handlers) water(r *stdhttp.Request, in domain.WaterInput) (any, error) {
	in.SourceRecipeID = ""
	return h.svc.Water(r.Context(), in)
}

// swagger:route POST /calc/gravity Calc calcGravity
// @Summary Estimate OG, FG and ABV
// @Tags Calc
// @Accept json
// @Produce json
// @Param payload body domain.GravityInput true "Recipe"
// @Success 200 {object} gravity.Result "ok"
// @Router /calc/gravity [post]
func (h *handlers) gravity(r *stdhttp.Request, in domain.GravityInput) (any, error) {
	return h.svc.Gravity(r.Context(), in)
}

// swagger:route POST /calc/ibu Calc calcIBU
// @Summary Estimate IBU with the Tinseth model
// @Tags Calc
// @Accept json
// @Produce json
// @Param payload body domain.IBUInput true "Recipe and optional OG"
// @Success 200 {object} ibu.Result "ok"
// @Router /calc/ibu [post]
func (h *handlers) ibu(r *stdhttp.Request, in domain.IBUInput) (any, error) {
	return h.svc.IBU(r.Context(), in)
}

// swagger:route POST /calc/color Calc calcColor
// @Summary Estimate MCU, SRM and EBC
// @Tags Calc
// @Accept json
// @Produce json
// @Param payload body domain.ColorInput true "Recipe"
// @Success 200 {object} color.Result "ok"
// @Router /calc/color [post]
func (h *handlers) color(r *stdhttp.Request, in domain.ColorInput) (any, error) {
	return h.svc.Color(r.Context(), in)
}

// swagger:route POST /calc/carbonation Calc calcCarbonation
// @Summary Size a priming sugar addition
// @Tags Calc
// @Accept json
// @Produce json
// @Param payload body domain.CarbonationInput true "Beer volume, temperature, target CO2"
// @Success 200 {object} carbonation.Result "ok"
// @Router /calc/carbonation [post]
func (h *handlers) carbonation(r *stdhttp.Request, in domain.CarbonationInput) (any, error) {
	return h.svc.Carbonation(r.Context(), in)
}
