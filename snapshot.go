package tardis

import (
	"fmt"
	"math"
)

// Snapshot is the immutable plasma/atomic input the transport kernel
// consumes. It is a structure-of-arrays, row-major for the per-(shell,
// line) and per-(shell,transition) matrices, mirroring the flat columnar
// layout a real driver would memory-map or stream in (cache behavior over
// S*L elements dominates the kernel's footprint).
type Snapshot struct {
	NShells int
	NLines  int

	// Shell boundary radii, cm. Strictly increasing; ROuter[i] == RInner[i+1].
	RInner []float64
	ROuter []float64
	// VInner is unused by the transport kernel itself except for diagnostics.
	VInner []float64

	ElectronDensity        []float64
	InverseElectronDensity []float64

	// LineListNu is rest-frame line frequencies (Hz), strictly decreasing.
	LineListNu []float64

	// TauSobolev[shell*NLines+line] is the Sobolev optical depth, non-negative.
	TauSobolev []float64

	LineInteraction LineInteractionMode

	// Line2MacroUpper[line] is the macro-atom upper level activated when
	// that line is absorbed.
	Line2MacroUpper []int

	// MacroBlockRefs[m] is the starting offset into the per-transition
	// arrays for macro level m; MacroBlockRefs[NMacroLevels] is the total
	// transition count.
	MacroBlockRefs []int

	// TransitionProbabilities[shell*NTransitions+t]; within the block for
	// level m, values are non-negative and sum to one per shell.
	TransitionProbabilities []float64
	// TransitionType[t]: internal up (>0), internal down (0), emission (-1).
	TransitionType []int
	// TransitionDestinationLevel[t] is the target macro level for
	// non-emission transitions.
	TransitionDestinationLevel []int
	// TransitionLineID[t] is the emitted line index for emission transitions.
	TransitionLineID []int

	TimeExplosion        float64
	InverseTimeExplosion float64

	// CompatMode reproduces the reference implementation's stale
	// line-cursor behavior after an electron scatter instead of the
	// corrected re-search (see DESIGN.md, Open Question decisions 2/4).
	CompatMode bool
}

// NewSnapshot allocates all column slices at the stated shell/line counts.
// TransitionProbabilities/TransitionType/TransitionDestinationLevel/
// TransitionLineID and MacroBlockRefs are left for the caller to size,
// since their length depends on the macro-atom network's transition
// count, not directly on nShells/nLines.
func NewSnapshot(nShells, nLines int) *Snapshot {
	return &Snapshot{
		NShells:                nShells,
		NLines:                 nLines,
		RInner:                 make([]float64, nShells),
		ROuter:                 make([]float64, nShells),
		VInner:                 make([]float64, nShells),
		ElectronDensity:        make([]float64, nShells),
		InverseElectronDensity: make([]float64, nShells),
		LineListNu:             make([]float64, nLines),
		TauSobolev:             make([]float64, nShells*nLines),
		Line2MacroUpper:        make([]int, nLines),
	}
}

// ContractViolationError reports every snapshot precondition failure found
// by Validate in a single pass, rather than failing on the first one.
type ContractViolationError struct {
	Violations []string
}

func (e *ContractViolationError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("tardis: snapshot contract violation: %s", e.Violations[0])
	}
	return fmt.Sprintf("tardis: %d snapshot contract violations, first: %s", len(e.Violations), e.Violations[0])
}

const (
	shellBoundaryTol  = 1e-6
	densityTol        = 0.0 // strictly positive, no tolerance
	probabilitySumTol = 1e-6
	reciprocalTol     = 1e-6
)

// Validate checks the §3 snapshot invariants and returns a
// *ContractViolationError describing every violation found, or nil.
func (s *Snapshot) Validate() error {
	var v []string

	if s.NShells <= 0 {
		v = append(v, "NShells must be positive")
	}
	if s.NLines < 0 {
		v = append(v, "NLines must be non-negative")
	}

	if len(s.RInner) != s.NShells || len(s.ROuter) != s.NShells {
		v = append(v, "RInner/ROuter length must equal NShells")
	} else {
		for i := 0; i < s.NShells; i++ {
			if s.RInner[i] >= s.ROuter[i] {
				v = append(v, fmt.Sprintf("shell %d: RInner >= ROuter", i))
			}
			if i > 0 && math.Abs(s.ROuter[i-1]-s.RInner[i]) > shellBoundaryTol*s.ROuter[i-1] {
				v = append(v, fmt.Sprintf("shell %d: ROuter[%d] != RInner[%d] (boundary gap)", i, i-1, i))
			}
		}
	}

	if len(s.ElectronDensity) != s.NShells {
		v = append(v, "ElectronDensity length must equal NShells")
	} else {
		for i, ne := range s.ElectronDensity {
			if ne <= densityTol {
				v = append(v, fmt.Sprintf("shell %d: ElectronDensity must be strictly positive", i))
			}
		}
	}
	if len(s.InverseElectronDensity) == s.NShells {
		for i, ne := range s.ElectronDensity {
			inv := s.InverseElectronDensity[i]
			if ne > 0 && math.Abs(inv*ne-1) > reciprocalTol {
				v = append(v, fmt.Sprintf("shell %d: InverseElectronDensity is not the reciprocal of ElectronDensity", i))
			}
		}
	}

	if len(s.LineListNu) != s.NLines {
		v = append(v, "LineListNu length must equal NLines")
	} else {
		for i := 1; i < len(s.LineListNu); i++ {
			if s.LineListNu[i] >= s.LineListNu[i-1] {
				v = append(v, fmt.Sprintf("line %d: LineListNu not strictly decreasing", i))
				break
			}
		}
	}

	if len(s.TauSobolev) != s.NShells*s.NLines {
		v = append(v, "TauSobolev length must equal NShells*NLines")
	} else {
		for i, tau := range s.TauSobolev {
			if tau < 0 {
				v = append(v, fmt.Sprintf("TauSobolev[%d] is negative", i))
				break
			}
		}
	}

	if nLevels := len(s.MacroBlockRefs); nLevels > 1 {
		nTransitions := s.MacroBlockRefs[nLevels-1]
		if len(s.TransitionProbabilities) != s.NShells*nTransitions {
			v = append(v, "TransitionProbabilities length must equal NShells*total-transition-count")
		} else {
			for shell := 0; shell < s.NShells; shell++ {
				for m := 0; m < nLevels-1; m++ {
					start, end := s.MacroBlockRefs[m], s.MacroBlockRefs[m+1]
					sum := 0.0
					for t := start; t < end; t++ {
						p := s.TransitionProbabilities[shell*nTransitions+t]
						if p < 0 {
							v = append(v, fmt.Sprintf("shell %d level %d: negative transition probability", shell, m))
						}
						sum += p
					}
					if end > start && math.Abs(sum-1) > probabilitySumTol {
						v = append(v, fmt.Sprintf("shell %d level %d: transition probabilities sum to %.9f, want 1", shell, m, sum))
					}
				}
			}
		}
	}

	if s.TimeExplosion <= 0 {
		v = append(v, "TimeExplosion must be positive")
	} else if math.Abs(s.InverseTimeExplosion*s.TimeExplosion-1) > reciprocalTol {
		v = append(v, "InverseTimeExplosion is not the reciprocal of TimeExplosion")
	}

	if len(v) == 0 {
		return nil
	}
	return &ContractViolationError{Violations: v}
}
