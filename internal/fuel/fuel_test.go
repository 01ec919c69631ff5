package fuel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolume(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		d    time.Duration
		want float64
	}{
		{"one hour", 8.5, time.Hour, 8.5},
		{"ninety minutes", 10, 90 * time.Minute, 15},
		{"zero time", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Volume(tt.rate, tt.d), 1e-9)
		})
	}
}

func TestWeight(t *testing.T) {
	assert.InDelta(t, 240.0, Weight(40, Avgas), 1e-9)
	assert.InDelta(t, 670.0, Weight(100, JetA), 1e-9)
	assert.InDelta(t, 60.0, Weight(10, Type("unknown")), 1e-9)
}

func TestReserve(t *testing.T) {
	assert.InDelta(t, 4.0, Reserve(8, DayReserve), 1e-9)
	assert.InDelta(t, 6.0, Reserve(8, NightReserve), 1e-9)
}

func TestEndurance(t *testing.T) {
	d, err := Endurance(40, 8)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Hour, d)

	_, err = Endurance(40, 0)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"100LL", Avgas, false},
		{"avgas", Avgas, false},
		{" Jet-A ", JetA, false},
		{"jeta", JetA, false},
		{"mogas", Mogas, false},
		{"diesel", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
