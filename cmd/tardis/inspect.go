package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/jvshields/tardis/snapshotio"
)

// runInspect reports per-shell summary statistics of a snapshot's
// columns without transporting any packets, for spotting a bad
// synthesis or a corrupt ingested file before spending a run on it.
func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	path := fs.String("snap", "", "path to a .tardis-snap file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("inspect requires -snap")
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	snap, err := snapshotio.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", *path, err)
	}

	fmt.Printf(">>> INSPECT: %s\n", *path)
	fmt.Printf("shells=%d lines=%d interaction=%s compat_mode=%v t_explosion=%.4e\n",
		snap.NShells, snap.NLines, snap.LineInteraction, snap.CompatMode, snap.TimeExplosion)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SHELL\tR_INNER\tR_OUTER\tNE\tMEAN_TAU\tMAX_TAU")
	fmt.Fprintln(w, "-----\t-------\t-------\t--\t--------\t-------")
	for s := 0; s < snap.NShells; s++ {
		meanTau, maxTau := 0.0, 0.0
		if snap.NLines > 0 {
			sum := 0.0
			for l := 0; l < snap.NLines; l++ {
				tau := snap.TauSobolev[s*snap.NLines+l]
				sum += tau
				if tau > maxTau {
					maxTau = tau
				}
			}
			meanTau = sum / float64(snap.NLines)
		}
		fmt.Fprintf(w, "%d\t%.4e\t%.4e\t%.4e\t%.4f\t%.4f\n",
			s, snap.RInner[s], snap.ROuter[s], snap.ElectronDensity[s], meanTau, maxTau)
	}
	w.Flush()

	nLevels := len(snap.MacroBlockRefs)
	if nLevels > 1 {
		nTransitions := snap.MacroBlockRefs[nLevels-1]
		fmt.Printf("macro_levels=%d transitions=%d\n", nLevels-1, nTransitions)
	}

	if snap.NLines > 1 {
		minGap := math.Inf(1)
		for i := 1; i < snap.NLines; i++ {
			gap := snap.LineListNu[i-1] - snap.LineListNu[i]
			if gap < minGap {
				minGap = gap
			}
		}
		fmt.Printf("min_line_gap=%.4e\n", minGap)
	}

	return nil
}
