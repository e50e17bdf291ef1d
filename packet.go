package tardis

// Packet is the per-packet mutable state. It is a plain value type with no
// pointer fields so that a worker can keep it on its own stack for the
// duration of RunPacket — no per-packet heap allocation anywhere in the
// transport loop (§5, §9).
type Packet struct {
	Nu     float64 // rest-frame frequency, Hz
	Mu     float64 // direction cosine, [-1, 1]
	Energy float64
	R      float64 // radius, cm
	Shell  int     // current shell id, [0, NShells)

	Line int // current line cursor, [0, NLines]

	LastLine  bool
	CloseLine bool

	// RecentlyCrossedBoundary: -1 just crossed inner, 0 neither, +1 just
	// crossed outer (or packet start).
	RecentlyCrossedBoundary int8

	TauEvent float64 // event optical-depth budget, drawn fresh at each event
}

// Estimators holds the per-shell radiation-field moment accumulators.
type Estimators struct {
	J     []float64
	NuBar []float64
}

// NewEstimators allocates zeroed estimator buffers for nShells shells.
func NewEstimators(nShells int) *Estimators {
	return &Estimators{
		J:     make([]float64, nShells),
		NuBar: make([]float64, nShells),
	}
}

// addInto merges e into dst, element-wise.
func (e *Estimators) addInto(dst *Estimators) {
	for i := range e.J {
		dst.J[i] += e.J[i]
		dst.NuBar[i] += e.NuBar[i]
	}
}

// reset zeroes the estimators in place.
func (e *Estimators) reset() {
	for i := range e.J {
		e.J[i] = 0
		e.NuBar[i] = 0
	}
}
