// Package domain holds DTOs for stats http and service contracts
package domain

// Query windows are whole days; times are ISO dates without timezone

// TimeRange defines a start and end date for queries, both inclusive
type TimeRange struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02" example:"2026-08-01"`
	End   string `json:"end" validate:"required,datetime=2006-01-02" example:"2026-08-31"`
}

// FlagsInput buckets runs by the diagnostic flags they raised
type FlagsInput struct {
	Range TimeRange `json:"range"`
	Limit int       `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"100"`
}

// FlagRow represents a row in the Flags output
type FlagRow struct {
	Flag string `json:"flag" example:"Assumed boil-off rate from batch size"`
	Runs int64  `json:"runs" example:"42"`
}

// SpargeMethodsInput buckets runs by how sparge usage was decided
type SpargeMethodsInput struct {
	Range TimeRange `json:"range"`
}

// SpargeMethodRow represents a row in the SpargeMethods output
type SpargeMethodRow struct {
	Method     string `json:"method" example:"equipment"`
	Confidence string `json:"confidence" example:"high"`
	Runs       int64  `json:"runs" example:"31"`
	Sparging   int64  `json:"sparging_runs" example:"29"`
}

// AdjustmentsInput buckets reconciliation adjustments by day
type AdjustmentsInput struct {
	Range TimeRange `json:"range"`
}

// AdjustmentRow represents a row in the Adjustments output
type AdjustmentRow struct {
	Day            string  `json:"day" example:"2026-08-01"`
	Runs           int64   `json:"runs" example:"120"`
	Adjusted       int64   `json:"adjusted" example:"17"`
	AvgAdjustmentL float64 `json:"avg_adjustment_l" example:"0.42"`
}

// EvapMethodsInput buckets runs by how evaporation was resolved
type EvapMethodsInput struct {
	Range TimeRange `json:"range"`
}

// EvapMethodRow represents a row in the EvapMethods output
type EvapMethodRow struct {
	Method        string  `json:"method" example:"evap_rate"`
	Runs          int64   `json:"runs" example:"64"`
	AvgBoilOffLHr float64 `json:"avg_boil_off_l_hr" example:"2.9"`
}
