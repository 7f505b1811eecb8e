package model

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearModel_Predict(t *testing.T) {
	m := NewLinearModel(2, 3)

	assert.Equal(t, 2.0, m.Slope())
	assert.Equal(t, 3.0, m.Intercept())
	assert.Equal(t, 3.0, m.Predict(0))
	assert.Equal(t, 23.0, m.Predict(10))
	assert.Equal(t, "y = 2·x + 3", m.String())
}

func TestLinearModel_Transform(t *testing.T) {
	m := NewLinearModel(0.5, -1)
	xs := []float64{0, 2, 4}

	got := m.Transform(xs)
	assert.Equal(t, []float64{-1, 0, 1}, got)
	assert.Equal(t, []float64{0, 2, 4}, xs, "input must not be modified")
	assert.Empty(t, m.Transform(nil))
}

func TestLinearModel_MarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Object("model", NewLinearModel(42.5, -1.25)).Msg("fitted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, map[string]any{"slope": 42.5, "intercept": -1.25}, entry["model"])
}
