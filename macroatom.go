package tardis

import "github.com/jvshields/tardis/rng"

// Emit samples a macro-atom transition chain starting at upperLevel in
// shell, until an emission transition is reached, and returns the emitted
// line index. Termination of the inner loop relies on the invariant that,
// within every level's block, probabilities sum to 1 per shell (Validate
// checks this); termination of the outer loop is guaranteed by the atomic
// model (every internal chain eventually reaches an emission transition).
func Emit(s *Snapshot, src rng.Source, upperLevel, shell int) int {
	nTransitions := s.MacroBlockRefs[len(s.MacroBlockRefs)-1]
	activeLevel := upperLevel

	for {
		u := src.Uniform()
		i := s.MacroBlockRefs[activeLevel]
		p := 0.0

		for {
			p += s.TransitionProbabilities[shell*nTransitions+i]
			if p > u {
				break
			}
			i++
		}

		switch {
		case s.TransitionType[i] == TransitionEmission:
			return s.TransitionLineID[i]
		default:
			activeLevel = s.TransitionDestinationLevel[i]
		}
	}
}
