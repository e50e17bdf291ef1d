package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/jvshields/tardis"
	"github.com/jvshields/tardis/snapshotio"
)

// runSynth builds a synthetic plasma snapshot with a power-law density
// profile and a log-spaced line list, for use as a fixture without
// needing real atomic-data ingestion (which lives outside this kernel,
// per SPEC_FULL.md §1).
func runSynth(args []string) error {
	fs := flag.NewFlagSet("synth", flag.ExitOnError)
	out := fs.String("out", "synthetic.tardis-snap", "output snapshot path")
	nShells := fs.Int("shells", 20, "number of radial shells")
	nLines := fs.Int("lines", 500, "number of lines in the line list")
	tInner := fs.Float64("r-inner", 1e14, "innermost shell radius, cm")
	tOuter := fs.Float64("r-outer", 2e14, "outermost shell radius, cm")
	timeExplosion := fs.Float64("t-explosion", 1e6, "time since explosion, s")
	interaction := fs.String("interaction", "scatter", "line interaction mode: scatter|downbranch|macro")
	seed := fs.Uint64("seed", 1, "seed for the synthetic tau fill")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mode, err := parseInteractionMode(*interaction)
	if err != nil {
		return err
	}

	snap := buildSyntheticSnapshot(*nShells, *nLines, *tInner, *tOuter, *timeExplosion, mode, *seed)
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("synthesized an invalid snapshot: %w", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := snapshotio.Encode(f, snap); err != nil {
		return err
	}
	fmt.Printf(">>> SYNTH: wrote %s (%d shells, %d lines, %s)\n", *out, *nShells, *nLines, mode)
	return nil
}

func parseInteractionMode(s string) (tardis.LineInteractionMode, error) {
	switch s {
	case "scatter":
		return tardis.Scatter, nil
	case "downbranch":
		return tardis.Downbranch, nil
	case "macro":
		return tardis.Macro, nil
	default:
		return 0, fmt.Errorf("unknown interaction mode %q", s)
	}
}

// buildSyntheticSnapshot fills every column by formula rather than by
// drawing from the kernel's own rng.Source, so that synthesizing a
// fixture never consumes the same stream a transport run would use.
func buildSyntheticSnapshot(nShells, nLines int, rInner, rOuter, timeExplosion float64, mode tardis.LineInteractionMode, seed uint64) *tardis.Snapshot {
	snap := tardis.NewSnapshot(nShells, nLines)
	snap.LineInteraction = mode
	snap.TimeExplosion = timeExplosion
	snap.InverseTimeExplosion = 1 / timeExplosion

	shellWidth := (rOuter - rInner) / float64(nShells)
	for i := 0; i < nShells; i++ {
		snap.RInner[i] = rInner + float64(i)*shellWidth
		snap.ROuter[i] = rInner + float64(i+1)*shellWidth
		snap.VInner[i] = snap.RInner[i] / timeExplosion

		// Power-law electron density, steeply falling outward, loosely
		// modeled on a homologous ejecta's rho ~ r^-7 density profile.
		rMid := (snap.RInner[i] + snap.ROuter[i]) / 2
		ne := 1e9 * math.Pow(rInner/rMid, 7)
		snap.ElectronDensity[i] = ne
		snap.InverseElectronDensity[i] = 1 / ne
	}

	nuMax, nuMin := 3e15, 1e14
	logMax, logMin := math.Log(nuMax), math.Log(nuMin)
	for i := 0; i < nLines; i++ {
		frac := float64(i) / float64(nLines-1)
		if nLines == 1 {
			frac = 0
		}
		snap.LineListNu[i] = math.Exp(logMax - frac*(logMax-logMin))
	}

	for shell := 0; shell < nShells; shell++ {
		rFrac := float64(shell) / float64(nShells)
		for line := 0; line < nLines; line++ {
			h := hashFNV(seed, uint64(shell), uint64(line))
			u := float64(h%1_000_000) / 1_000_000
			// Optically thick near the photosphere, thin in the outer shells.
			tau := 5.0 * (1 - rFrac) * u
			snap.TauSobolev[shell*nLines+line] = tau
		}
	}

	if mode == tardis.Scatter {
		return snap
	}

	for i := range snap.Line2MacroUpper {
		snap.Line2MacroUpper[i] = i % 2
	}
	buildTwoLevelMacroAtom(snap)
	return snap
}

// buildTwoLevelMacroAtom wires a minimal two-level macro-atom network:
// level 0 always emits directly, level 1 branches between an internal
// jump down to level 0 and a direct emission, exercising both
// TransitionInternalDown and TransitionEmission in tardis.Emit.
func buildTwoLevelMacroAtom(snap *tardis.Snapshot) {
	snap.MacroBlockRefs = []int{0, 1, 3}
	nTransitions := 3
	snap.TransitionType = []int{tardis.TransitionEmission, tardis.TransitionInternalDown, tardis.TransitionEmission}
	snap.TransitionDestinationLevel = []int{-1, 0, -1}
	snap.TransitionLineID = []int{0, -1, 1 % snap.NLines}

	snap.TransitionProbabilities = make([]float64, snap.NShells*nTransitions)
	for shell := 0; shell < snap.NShells; shell++ {
		snap.TransitionProbabilities[shell*nTransitions+0] = 1.0
		snap.TransitionProbabilities[shell*nTransitions+1] = 0.7
		snap.TransitionProbabilities[shell*nTransitions+2] = 0.3
	}
}

func hashFNV(seed, a, b uint64) uint64 {
	const prime = 1099511628211
	h := uint64(14695981039346656037) ^ seed
	h = (h ^ a) * prime
	h = (h ^ b) * prime
	return h
}
