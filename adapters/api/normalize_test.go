package api

import (
	"encoding/json"
	"math"
	"testing"

	"groupstat/domain/grouped"
	"groupstat/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_KeyConventions(t *testing.T) {
	n := NewNormalizer(DefaultNormalizerConfig())

	rows, err := n.Normalize(json.RawMessage(`[
		{"l": 0, "u": 10, "f": 5},
		{"lower": "10", "upper": " 20 ", "frequency": 8.5},
		{"l": 20, "u": 30, "f": 3, "lower": 99, "upper": 100, "frequency": 1}
	]`))
	require.NoError(t, err)

	assert.Equal(t, []grouped.IntervalRow{
		grouped.NewIntervalRow(0, 10, 5),
		grouped.NewIntervalRow(10, 20, 8.5),
		grouped.NewIntervalRow(20, 30, 3),
	}, rows)
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		message string
	}{
		{"missing dataset", ``, MsgMissingDataset},
		{"null dataset", `null`, MsgMissingDataset},
		{"dataset not a list", `{"l": 1}`, MsgInvalidRow},
		{"row not an object", `[1, 2, 3]`, MsgInvalidRow},
		{"mixed conventions", `[{"l": 0, "upper": 10, "f": 1}]`, MsgInvalidRow},
		{"partial row", `[{"lower": 0, "upper": 10}]`, MsgInvalidRow},
		{"non numeric string", `[{"l": "abc", "u": 10, "f": 1}]`, MsgInvalidNumber},
		{"null value", `[{"l": 0, "u": null, "f": 1}]`, MsgInvalidNumber},
		{"array value", `[{"l": 0, "u": 10, "f": [1]}]`, MsgInvalidNumber},
	}

	n := NewNormalizer(DefaultNormalizerConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(json.RawMessage(tt.raw))
			require.Error(t, err)
			assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestNormalize_MaxRows(t *testing.T) {
	n := NewNormalizer(NormalizerConfig{
		Conventions: DefaultNormalizerConfig().Conventions,
		MaxRows:     1,
	})
	_, err := n.Normalize(json.RawMessage(`[{"l":0,"u":1,"f":1},{"l":1,"u":2,"f":1}]`))
	assert.EqualError(t, err, MsgTooManyRows)
}

func TestParseComputeRequest(t *testing.T) {
	n := NewNormalizer(DefaultNormalizerConfig())

	rows, err := n.ParseComputeRequest([]byte(`{"dataset": [{"l": 0, "u": 10, "f": 4}]}`))
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	for _, body := range []string{``, `not json`, `{}`, `{"other": []}`} {
		_, err := n.ParseComputeRequest([]byte(body))
		assert.EqualError(t, err, MsgMissingDataset, "body %q", body)
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{json.Number("2.5"), 2.5, true},
		{3.0, 3, true},
		{" 7 ", 7, true},
		{"1e3", 1000, true},
		{true, 1, true},
		{false, 0, true},
		{"", 0, false},
		{nil, 0, false},
		{map[string]interface{}{}, 0, false},
	}

	for _, tt := range tests {
		got, err := CoerceFloat(tt.in)
		if !tt.ok {
			assert.Error(t, err, "input %v", tt.in)
			continue
		}
		require.NoError(t, err, "input %v", tt.in)
		assert.Equal(t, tt.want, got)
	}

	inf, err := CoerceFloat("-Infinity")
	require.NoError(t, err)
	assert.True(t, math.IsInf(inf, -1))
}

func TestNewComputeResponse(t *testing.T) {
	result := &grouped.StatsResult{
		Dataset: grouped.Dataset{
			{Lower: 0, Upper: 10, Frequency: 4, Midpoint: 5, Width: 10},
		},
		TotalFrequency: 4,
		Mean:           5,
		Median:         5,
		Mode:           5,
	}

	body, err := json.Marshal(NewComputeResponse("abc", result))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "abc",
		"dataset": [{"l": 0, "u": 10, "f": 4, "x": 5}],
		"total_frequency": 4,
		"mean": 5,
		"median": 5,
		"mode": 5,
		"variance": 0,
		"std_dev": 0
	}`, string(body))
}
