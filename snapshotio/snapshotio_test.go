package snapshotio

import (
	"bytes"
	"testing"

	"github.com/jvshields/tardis"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *tardis.Snapshot {
	snap := tardis.NewSnapshot(2, 3)
	snap.RInner = []float64{1e14, 1.5e14}
	snap.ROuter = []float64{1.5e14, 2e14}
	snap.VInner = []float64{1e8, 1.5e8}
	snap.ElectronDensity = []float64{1e9, 5e8}
	snap.InverseElectronDensity = []float64{1 / 1e9, 1 / 5e8}
	snap.LineListNu = []float64{3e15, 2e15, 1e15}
	snap.TauSobolev = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	snap.Line2MacroUpper = []int{0, 1, 0}
	snap.MacroBlockRefs = []int{0, 2, 3}
	snap.TransitionProbabilities = []float64{0.4, 0.6, 1.0, 0.4, 0.6, 1.0}
	snap.TransitionType = []int{0, -1, -1}
	snap.TransitionDestinationLevel = []int{1, -1, -1}
	snap.TransitionLineID = []int{-1, 0, 1}
	snap.LineInteraction = tardis.Macro
	snap.TimeExplosion = 1e6
	snap.InverseTimeExplosion = 1 / 1e6
	return snap
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := sampleSnapshot()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, want))

	got, err := Decode(&buf)
	require.NoError(t, err)

	require.Equal(t, want.NShells, got.NShells)
	require.Equal(t, want.NLines, got.NLines)
	require.Equal(t, want.LineInteraction, got.LineInteraction)
	require.Equal(t, want.CompatMode, got.CompatMode)
	require.InDelta(t, want.TimeExplosion, got.TimeExplosion, 1e-6)
	require.InDelta(t, want.InverseTimeExplosion, got.InverseTimeExplosion, 1e-12)
	require.Equal(t, want.RInner, got.RInner)
	require.Equal(t, want.ROuter, got.ROuter)
	require.Equal(t, want.VInner, got.VInner)
	require.Equal(t, want.ElectronDensity, got.ElectronDensity)
	require.Equal(t, want.LineListNu, got.LineListNu)
	require.Equal(t, want.TauSobolev, got.TauSobolev)
	require.Equal(t, want.Line2MacroUpper, got.Line2MacroUpper)
	require.Equal(t, want.MacroBlockRefs, got.MacroBlockRefs)
	require.Equal(t, want.TransitionProbabilities, got.TransitionProbabilities)
	require.Equal(t, want.TransitionType, got.TransitionType)
	require.Equal(t, want.TransitionDestinationLevel, got.TransitionDestinationLevel)
	require.Equal(t, want.TransitionLineID, got.TransitionLineID)

	require.NoError(t, got.Validate())
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer(make([]byte, headerSize))
	_, err := Decode(buf)
	require.Error(t, err)
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("short")))
	require.Error(t, err)
}

func TestEncodeDecodeEmptySnapshot(t *testing.T) {
	snap := tardis.NewSnapshot(0, 0)
	snap.TimeExplosion = 1
	snap.InverseTimeExplosion = 1

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	got, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 0, got.NShells)
	require.Equal(t, 0, got.NLines)
}
