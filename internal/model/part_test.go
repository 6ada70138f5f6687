package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartJSONRoundTrip(t *testing.T) {
	rect := NewRectPart(100, 50, 90)

	data, err := json.Marshal(rect)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tipo":"retangular"`)

	var decoded Part
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Rectangular, decoded.Kind)
	assert.Equal(t, uint32(100), decoded.Width)
	assert.Equal(t, uint32(50), decoded.Height)
	assert.Equal(t, 90, decoded.Rotation)
}

func TestPartUnmarshalUnknownTipo(t *testing.T) {
	var p Part
	err := json.Unmarshal([]byte(`{"tipo":"hexagonal"}`), &p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPart))
}

func TestPartUnmarshalCircular(t *testing.T) {
	var p Part
	require.NoError(t, json.Unmarshal([]byte(`{"tipo":"circular","r":10,"x":1,"y":2}`), &p))
	assert.Equal(t, Circular, p.Kind)
	assert.Equal(t, uint32(10), p.Radius)
}

func TestValidatePart(t *testing.T) {
	cases := []struct {
		name    string
		part    Part
		wantErr bool
	}{
		{"valid rect", NewRectPart(10, 10, 0), false},
		{"valid rect rotated", NewRectPart(10, 10, 90), false},
		{"rect bad rotation", NewRectPart(10, 10, 45), true},
		{"rect zero width", NewRectPart(0, 10, 0), true},
		{"valid circle", NewCirclePart(5), false},
		{"zero radius circle", NewCirclePart(0), true},
		{"valid diamond", NewDiamondPart(20, 20, 30), false},
		{"diamond bad rotation step", NewDiamondPart(20, 20, 15), true},
		{"diamond rotation out of range", NewDiamondPart(20, 20, 100), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePart(tc.part)
			if tc.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPart))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSheet(t *testing.T) {
	assert.NoError(t, ValidateSheet(Sheet{Width: 10, Height: 10}))
	assert.Error(t, ValidateSheet(Sheet{Width: 0, Height: 10}))
	assert.Error(t, ValidateSheet(Sheet{Width: 10, Height: -1}))
}

func TestAllScanConfigsAreDistinct(t *testing.T) {
	cfgs := AllScanConfigs(0)
	seen := map[string]bool{}
	for _, c := range cfgs {
		seen[c.String()] = true
	}
	assert.Len(t, seen, 4)
}

func TestNewPheromoneStateUniform(t *testing.T) {
	p := NewPheromoneState(3, 1)
	assert.Len(t, p.Order, 3)
	for _, v := range p.Order {
		assert.Equal(t, 1.0, v)
	}
	assert.Len(t, p.Scan, 4)
	assert.Len(t, p.Rotation, 10)
	assert.Equal(t, 1.0, p.Direction[Horizontal])
}

func TestPheromoneEvaporate(t *testing.T) {
	p := NewPheromoneState(1, 1)
	p.Evaporate(0.9)
	for _, v := range p.Scan {
		assert.InDelta(t, 0.9, v, 1e-9)
	}
	assert.InDelta(t, 0.9, p.Order[0], 1e-9)
}
