package tardis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistanceToOuterLandsOnBoundary(t *testing.T) {
	r, mu, rOuter := 1.2e14, 0.3, 1.5e14
	d := DistanceToOuter(r, mu, rOuter)
	require.Greater(t, d, 0.0)

	rNew := math.Sqrt(r*r + d*d + 2*r*d*mu)
	require.InDelta(t, rOuter, rNew, rOuter*1e-10)
}

func TestDistanceToOuterClampsNearGrazingIncidence(t *testing.T) {
	// r == rOuter, mu == 0 (grazing): the discriminant is exactly 0, the
	// edge the clamp guards, so the distance must be neither NaN nor negative.
	d := DistanceToOuter(1.5e14, 0, 1.5e14)
	require.False(t, math.IsNaN(d))
	require.GreaterOrEqual(t, d, 0.0)
}

func TestDistanceToInnerOutwardIsMiss(t *testing.T) {
	require.Equal(t, Miss, DistanceToInner(1.2e14, 0.1, 1e14))
	require.Equal(t, Miss, DistanceToInner(1.2e14, 0, 1e14))
}

func TestDistanceToInnerInwardHitsBoundary(t *testing.T) {
	r, mu, rInner := 1.2e14, -0.9, 1e14
	d := DistanceToInner(r, mu, rInner)
	require.NotEqual(t, Miss, d)
	require.Greater(t, d, 0.0)

	rNew := math.Sqrt(r*r + d*d + 2*r*d*mu)
	require.InDelta(t, rInner, rNew, rInner*1e-10)
}

func TestDistanceToInnerSmallMuMisses(t *testing.T) {
	// A shallow inward angle from well above the inner sphere misses it.
	d := DistanceToInner(1.9e14, -0.01, 1e14)
	require.Equal(t, Miss, d)
}
