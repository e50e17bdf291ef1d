// Package snapshotio persists a tardis.Snapshot to/from a binary
// ".tardis-snap" file. This is ambient tooling around the transport
// kernel, not part of the core kernel itself (the kernel's own contract
// takes an in-memory *tardis.Snapshot) — it exists so cmd/tardis can load
// and save fixtures, the same way the teacher's encoder.go/decoder.go sit
// outside its actual study kernel (math.go/metrics.go).
package snapshotio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/jvshields/tardis"
)

// Magic identifies a tardis snapshot file.
const Magic = "TDS1"

const formatVersion = 1

const headerSize = 64

// Encode writes snap to w in the TDS1 binary format: a fixed 64-byte
// header followed by the snapshot's columns, each written as a
// contiguous bulk binary.Write (mirroring the teacher's chunked
// binary.Write framing in encoder.go, simplified to a single chunk since
// a Snapshot, unlike a streamed tick file, is always fully materialized
// in memory before it is ever written).
func Encode(w io.Writer, snap *tardis.Snapshot) error {
	nMacroLevels := len(snap.MacroBlockRefs)
	nTransitions := 0
	if nMacroLevels > 0 {
		nTransitions = snap.MacroBlockRefs[nMacroLevels-1]
	}

	header := make([]byte, headerSize)
	copy(header[0:4], Magic)
	binary.LittleEndian.PutUint32(header[4:8], formatVersion)
	binary.LittleEndian.PutUint64(header[8:16], uint64(snap.NShells))
	binary.LittleEndian.PutUint64(header[16:24], uint64(snap.NLines))
	binary.LittleEndian.PutUint64(header[24:32], uint64(nMacroLevels))
	binary.LittleEndian.PutUint64(header[32:40], uint64(nTransitions))
	binary.LittleEndian.PutUint32(header[40:44], uint32(snap.LineInteraction))
	if snap.CompatMode {
		header[44] = 1
	}
	binary.LittleEndian.PutUint64(header[48:56], math.Float64bits(snap.TimeExplosion))
	binary.LittleEndian.PutUint64(header[56:64], math.Float64bits(snap.InverseTimeExplosion))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("snapshotio: writing header: %w", err)
	}

	writers := []func() error{
		func() error { return binary.Write(w, binary.LittleEndian, asBytes(snap.RInner)) },
		func() error { return binary.Write(w, binary.LittleEndian, asBytes(snap.ROuter)) },
		func() error { return binary.Write(w, binary.LittleEndian, asBytes(snap.VInner)) },
		func() error { return binary.Write(w, binary.LittleEndian, asBytes(snap.ElectronDensity)) },
		func() error { return binary.Write(w, binary.LittleEndian, asBytes(snap.InverseElectronDensity)) },
		func() error { return binary.Write(w, binary.LittleEndian, asBytes(snap.LineListNu)) },
		func() error { return binary.Write(w, binary.LittleEndian, asBytes(snap.TauSobolev)) },
		func() error { return binary.Write(w, binary.LittleEndian, toInt64(snap.Line2MacroUpper)) },
		func() error { return binary.Write(w, binary.LittleEndian, toInt64(snap.MacroBlockRefs)) },
		func() error { return binary.Write(w, binary.LittleEndian, asBytes(snap.TransitionProbabilities)) },
		func() error { return binary.Write(w, binary.LittleEndian, toInt64(snap.TransitionType)) },
		func() error { return binary.Write(w, binary.LittleEndian, toInt64(snap.TransitionDestinationLevel)) },
		func() error { return binary.Write(w, binary.LittleEndian, toInt64(snap.TransitionLineID)) },
	}
	for _, write := range writers {
		if err := write(); err != nil {
			return fmt.Errorf("snapshotio: writing column: %w", err)
		}
	}
	return nil
}

func toInt64(s []int) []int64 {
	out := make([]int64, len(s))
	for i, v := range s {
		out[i] = int64(v)
	}
	return out
}
