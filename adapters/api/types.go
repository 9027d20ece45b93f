package api

import (
	"encoding/json"

	"groupstat/adapters/stats/binning"
	"groupstat/domain/grouped"
)

// ComputeRequest is the body of a single computation request
type ComputeRequest struct {
	Dataset json.RawMessage `json:"dataset"`
}

// BatchRequest carries several datasets computed in one call
type BatchRequest struct {
	Datasets []json.RawMessage `json:"datasets"`
}

// BinRequest carries raw observations to be grouped before computing
type BinRequest struct {
	Values  []float64 `json:"values"`
	Classes int       `json:"classes"`
}

// RowDTO is a dataset row as exposed on the wire
type RowDTO struct {
	L float64 `json:"l"`
	U float64 `json:"u"`
	F float64 `json:"f"`
	X float64 `json:"x"`
}

// ComputeResponse is the JSON shape of a computed result
type ComputeResponse struct {
	ID             string                 `json:"id,omitempty"`
	Dataset        []RowDTO               `json:"dataset"`
	TotalFrequency float64                `json:"total_frequency"`
	Mean           float64                `json:"mean"`
	Median         float64                `json:"median"`
	Mode           float64                `json:"mode"`
	Variance       float64                `json:"variance"`
	StdDev         float64                `json:"std_dev"`
	Breakdown      []grouped.RowBreakdown `json:"breakdown,omitempty"`
}

// BatchResponse lists results in request order
type BatchResponse struct {
	Results []ComputeResponse `json:"results"`
}

// BinResponse pairs the grouped result of binned observations with their raw statistics
type BinResponse struct {
	Computation ComputeResponse     `json:"computation"`
	Raw         *binning.RawSummary `json:"raw"`
}

// HistoryResponse lists recorded computations, newest first
type HistoryResponse struct {
	Computations []ComputeResponse `json:"computations"`
	Count        int               `json:"count"`
}

// ErrorResponse is returned with every non-2xx status
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewComputeResponse flattens a result into its wire shape
func NewComputeResponse(id string, result *grouped.StatsResult) ComputeResponse {
	rows := make([]RowDTO, len(result.Dataset))
	for i, row := range result.Dataset {
		rows[i] = RowDTO{L: row.Lower, U: row.Upper, F: row.Frequency, X: row.Midpoint}
	}
	return ComputeResponse{
		ID:             id,
		Dataset:        rows,
		TotalFrequency: result.TotalFrequency,
		Mean:           result.Mean,
		Median:         result.Median,
		Mode:           result.Mode,
		Variance:       result.Variance,
		StdDev:         result.StdDev,
	}
}
