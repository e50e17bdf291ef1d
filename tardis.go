// Package tardis implements the packet-transport kernel of a Monte Carlo
// radiative transfer engine for spherically symmetric, homologously
// expanding supernova ejecta: the geometry intersection math, the
// event-selection state machine, the Sobolev line-crossing logic, the
// macro-atom emission selector, and the estimator accumulation.
//
// The package consumes an immutable plasma/atomic Snapshot and returns
// packet outcomes plus per-shell radiation-field moments; atomic-data
// ingestion, plasma/ionization solving, configuration parsing, spectrum
// binning, and convergence driving all live outside this package.
package tardis

// Physical constants, CGS.
const (
	// SpeedOfLight is c in cm/s.
	SpeedOfLight = 2.99792458e10
	// ThomsonCrossSection is sigma_T in cm^2.
	ThomsonCrossSection = 6.652486e-25
)

// Miss is the sentinel distance representing "no intersection".
const Miss = 1e99

// CloseLineThreshold is the relative frequency separation below which two
// consecutive lines are treated as coincident (§4.5/§9 "close line").
const CloseLineThreshold = 1e-7

// LineInteractionMode selects how an absorbed line re-emits.
type LineInteractionMode int

const (
	// Scatter: resonance scattering, the emitted line is the absorbing line.
	Scatter LineInteractionMode = iota
	// Downbranch: macro-atom network restricted so the first jump is
	// always an emission transition.
	Downbranch
	// Macro: full macro-atom network, internal jumps allowed before emission.
	Macro
)

func (m LineInteractionMode) String() string {
	switch m {
	case Scatter:
		return "SCATTER"
	case Downbranch:
		return "DOWNBRANCH"
	case Macro:
		return "MACRO"
	default:
		return "UNKNOWN"
	}
}

// Transition type codes for Snapshot.TransitionType.
const (
	TransitionEmission = -1
	TransitionInternalDown = 0
	// Any value > 0 is an internal-up transition; spec.md does not assign
	// it a single sentinel. Emit only tests for TransitionEmission and
	// treats every other code as a jump to TransitionDestinationLevel.
)
