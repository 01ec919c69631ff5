package airspeed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolarVector(t *testing.T) {
	tests := []struct {
		name    string
		dir     int
		speed   float64
		wantErr bool
	}{
		{"typical wind", 270, 20, false},
		{"calm", 0, 0, false},
		{"out of range direction is kept", -30, 5, false},
		{"negative speed", 90, -1, true},
		{"NaN speed", 90, math.NaN(), true},
		{"infinite speed", 90, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewPolarVector(tt.dir, tt.speed)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidVector)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, PolarVector{Direction: tt.dir, Speed: tt.speed}, v)
		})
	}
}

func TestPolarVector_Normalized(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{359, 359},
		{360, 0},
		{-4, 356},
		{725, 5},
		{-720, 0},
	}

	for _, tt := range tests {
		got := PolarVector{Direction: tt.in, Speed: 12}.Normalized()
		assert.Equal(t, PolarVector{Direction: tt.want, Speed: 12}, got, "Normalized(%d)", tt.in)
	}
}

func TestPolarVector_String(t *testing.T) {
	assert.Equal(t, "270@20.00", PolarVector{Direction: 270, Speed: 20}.String())
	assert.Equal(t, "086@135.83", PolarVector{Direction: 86, Speed: 135.83}.String())
}

func TestParseVector(t *testing.T) {
	tests := []struct {
		in      string
		want    PolarVector
		wantErr bool
	}{
		{in: "270@20", want: PolarVector{Direction: 270, Speed: 20}},
		{in: " 090 / 124.5 ", want: PolarVector{Direction: 90, Speed: 124.5}},
		{in: "27015KT", want: PolarVector{Direction: 270, Speed: 15}},
		{in: "31012G22KT", want: PolarVector{Direction: 310, Speed: 12}},
		{in: "180/10kt", want: PolarVector{Direction: 180, Speed: 10}},
		{in: "", wantErr: true},
		{in: "270", wantErr: true},
		{in: "abc@10", wantErr: true},
		{in: "270@fast", wantErr: true},
		{in: "270@-5", wantErr: true},
		{in: "VRB05KT", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVector(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidVector)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComponents_Signed(t *testing.T) {
	assert.Equal(t, 12.5, BaseComponent{Kind: Headwind, Magnitude: 12.5}.Signed())
	assert.Equal(t, -3.0, BaseComponent{Kind: Tailwind, Magnitude: 3}.Signed())
	assert.Equal(t, 7.07, CrossComponent{Kind: RightCross, Magnitude: 7.07}.Signed())
	assert.Equal(t, -10.0, CrossComponent{Kind: LeftCross, Magnitude: 10}.Signed())
}

func TestWindComponents_String(t *testing.T) {
	wc := Decompose(PolarVector{Direction: 270, Speed: 20}, 300)
	assert.Equal(t, "Headwind 17.32, Left crosswind 10.00", wc.String())
}
