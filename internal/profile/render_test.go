package profile

import (
	"testing"
	"time"

	"fitprofile/internal/healthstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}
	return out
}

func TestRenderLoadedMetric(t *testing.T) {
	rows := Render(loadedState(ptr(34), ptr(1.8), ptr(72.0), nil, time.Now()), UnitsMetric)

	require.Len(t, rows, 4)
	assert.Equal(t, []RowKey{RowAge, RowHeight, RowWeight, RowBMI}, []RowKey{rows[0].Key, rows[1].Key, rows[2].Key, rows[3].Key})
	assert.Equal(t, []string{"34", "1.80 m", "72.0 kg", "22.2"}, values(rows))
	assert.Equal(t, "Normal", rows[3].Detail)
	for _, r := range rows {
		assert.True(t, r.Available)
	}
}

func TestRenderLoadedImperial(t *testing.T) {
	rows := Render(loadedState(ptr(34), ptr(1.8), ptr(72.0), nil, time.Now()), UnitsImperial)
	assert.Equal(t, []string{"34", "5' 11\"", "158.7 lb", "22.2"}, values(rows))
}

func TestRenderPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected []string
	}{
		{
			name:     "never loaded",
			state:    unauthorizedState(),
			expected: []string{"—", "—", "—", "—"},
		},
		{
			name:     "authorization denied",
			state:    unavailableState(healthstore.ErrAuthorizationDenied, time.Now()),
			expected: []string{"—", "—", "—", "—"},
		},
		{
			name:     "authorized but not loaded",
			state:    authorizedState(time.Now()),
			expected: []string{"—", "—", "—", "—"},
		},
		{
			name:     "zero height",
			state:    loadedState(ptr(40), ptr(0.0), ptr(70.0), nil, time.Now()),
			expected: []string{"40", "0.00 m", "70.0 kg", "—"},
		},
		{
			name:     "no samples at all",
			state:    loadedState(nil, nil, nil, healthstore.ErrNoSampleAvailable, time.Now()),
			expected: []string{"No Data", "No Data", "No Data", "—"},
		},
		{
			name:     "weight missing",
			state:    loadedState(ptr(40), ptr(1.7), nil, healthstore.ErrNoSampleAvailable, time.Now()),
			expected: []string{"40", "1.70 m", "No Data", "—"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, values(Render(tt.state, UnitsMetric)))
		})
	}
}

func TestParseUnits(t *testing.T) {
	u, err := ParseUnits(" Imperial ")
	require.NoError(t, err)
	assert.Equal(t, UnitsImperial, u)

	u, err = ParseUnits("metric")
	require.NoError(t, err)
	assert.Equal(t, UnitsMetric, u)

	_, err = ParseUnits("cubits")
	assert.Error(t, err)
}
