package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"groupstat/domain/grouped"
	"groupstat/internal/errors"
)

// Client-facing messages for malformed requests
const (
	MsgMissingDataset = "Missing dataset in request"
	MsgInvalidRow     = "Invalid row format"
	MsgInvalidNumber  = "Invalid numeric values in dataset"
	MsgTooManyRows    = "Too many rows in dataset"
)

// Normalizer turns loosely shaped request rows into engine rows
type Normalizer struct {
	config NormalizerConfig
}

// NewNormalizer creates a normalizer with the given configuration
func NewNormalizer(config NormalizerConfig) *Normalizer {
	return &Normalizer{config: config}
}

// ParseComputeRequest decodes a request body and normalizes its dataset
func (n *Normalizer) ParseComputeRequest(body []byte) ([]grouped.IntervalRow, error) {
	var req ComputeRequest
	if len(bytes.TrimSpace(body)) == 0 || json.Unmarshal(body, &req) != nil {
		return nil, errors.ValidationError(MsgMissingDataset)
	}
	return n.Normalize(req.Dataset)
}

// Normalize converts a raw JSON dataset into rows. A missing or null dataset,
// a row matching no key convention, and a value that is not numeric are all
// reported as VALIDATION_ERROR.
func (n *Normalizer) Normalize(raw json.RawMessage) ([]grouped.IntervalRow, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.ValidationError(MsgMissingDataset)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, errors.ValidationError(MsgInvalidRow)
	}
	if n.config.MaxRows > 0 && len(items) > n.config.MaxRows {
		return nil, errors.ValidationError(MsgTooManyRows)
	}

	rows := make([]grouped.IntervalRow, 0, len(items))
	for _, item := range items {
		row, err := n.normalizeRow(item)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (n *Normalizer) normalizeRow(item json.RawMessage) (grouped.IntervalRow, error) {
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return grouped.IntervalRow{}, errors.ValidationError(MsgInvalidRow)
	}

	for _, conv := range n.config.Conventions {
		lowerRaw, okL := fields[conv.Lower]
		upperRaw, okU := fields[conv.Upper]
		freqRaw, okF := fields[conv.Frequency]
		if !okL || !okU || !okF {
			continue
		}

		lower, errL := CoerceFloat(lowerRaw)
		upper, errU := CoerceFloat(upperRaw)
		freq, errF := CoerceFloat(freqRaw)
		if errL != nil || errU != nil || errF != nil {
			return grouped.IntervalRow{}, errors.ValidationError(MsgInvalidNumber)
		}
		return grouped.NewIntervalRow(lower, upper, freq), nil
	}

	return grouped.IntervalRow{}, errors.ValidationError(MsgInvalidRow)
}

// CoerceFloat converts a decoded JSON value to float64. Numbers, numeric
// strings (surrounding whitespace allowed, "inf" and "nan" included) and
// booleans are accepted; null, arrays and objects are not.
func CoerceFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case json.Number:
		return strconv.ParseFloat(t.String(), 64)
	case float64:
		return t, nil
	case string:
		return parseNumericString(t)
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}

func parseNumericString(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
