package snapshotio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/jvshields/tardis"
)

// Decode reads a TDS1 snapshot written by Encode. It validates the magic
// and version before trusting the header's lengths, since a corrupt or
// foreign file otherwise turns into a huge bogus allocation (teacher's
// decoder.go guards the same way before trusting its own chunk counts).
func Decode(r io.Reader) (*tardis.Snapshot, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("snapshotio: reading header: %w", err)
	}
	if string(header[0:4]) != Magic {
		return nil, fmt.Errorf("snapshotio: bad magic %q, want %q", header[0:4], Magic)
	}
	version := binary.LittleEndian.Uint32(header[4:8])
	if version != formatVersion {
		return nil, fmt.Errorf("snapshotio: unsupported format version %d", version)
	}

	nShells := int(binary.LittleEndian.Uint64(header[8:16]))
	nLines := int(binary.LittleEndian.Uint64(header[16:24]))
	nMacroLevels := int(binary.LittleEndian.Uint64(header[24:32]))
	nTransitions := int(binary.LittleEndian.Uint64(header[32:40]))
	lineInteraction := tardis.LineInteractionMode(binary.LittleEndian.Uint32(header[40:44]))
	compatMode := header[44] != 0
	timeExplosion := math.Float64frombits(binary.LittleEndian.Uint64(header[48:56]))
	inverseTimeExplosion := math.Float64frombits(binary.LittleEndian.Uint64(header[56:64]))

	if nShells < 0 || nLines < 0 || nMacroLevels < 0 || nTransitions < 0 {
		return nil, fmt.Errorf("snapshotio: negative column length in header")
	}

	snap := &tardis.Snapshot{
		NShells:              nShells,
		NLines:               nLines,
		LineInteraction:      lineInteraction,
		CompatMode:           compatMode,
		TimeExplosion:        timeExplosion,
		InverseTimeExplosion: inverseTimeExplosion,
	}

	readers := []func() error{
		func() error { return readFloat64s(r, &snap.RInner, nShells) },
		func() error { return readFloat64s(r, &snap.ROuter, nShells) },
		func() error { return readFloat64s(r, &snap.VInner, nShells) },
		func() error { return readFloat64s(r, &snap.ElectronDensity, nShells) },
		func() error { return readFloat64s(r, &snap.InverseElectronDensity, nShells) },
		func() error { return readFloat64s(r, &snap.LineListNu, nLines) },
		func() error { return readFloat64s(r, &snap.TauSobolev, nShells*nLines) },
		func() error { return readInts(r, &snap.Line2MacroUpper, nLines) },
		func() error { return readInts(r, &snap.MacroBlockRefs, nMacroLevels) },
		func() error { return readFloat64s(r, &snap.TransitionProbabilities, nShells*nTransitions) },
		func() error { return readInts(r, &snap.TransitionType, nTransitions) },
		func() error { return readInts(r, &snap.TransitionDestinationLevel, nTransitions) },
		func() error { return readInts(r, &snap.TransitionLineID, nTransitions) },
	}
	for _, read := range readers {
		if err := read(); err != nil {
			return nil, fmt.Errorf("snapshotio: reading column: %w", err)
		}
	}
	return snap, nil
}

func readFloat64s(r io.Reader, dst *[]float64, n int) error {
	*dst = resize(*dst, n)
	if n == 0 {
		return nil
	}
	return binary.Read(r, binary.LittleEndian, *dst)
}

func readInts(r io.Reader, dst *[]int, n int) error {
	if n == 0 {
		*dst = resize(*dst, 0)
		return nil
	}
	buf := make([]int64, n)
	if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
		return err
	}
	*dst = resize(*dst, n)
	for i, v := range buf {
		(*dst)[i] = int(v)
	}
	return nil
}
