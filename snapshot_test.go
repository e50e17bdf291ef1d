package tardis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validSnapshot() *Snapshot {
	s := NewSnapshot(2, 2)
	s.RInner = []float64{1e14, 1.5e14}
	s.ROuter = []float64{1.5e14, 2e14}
	s.ElectronDensity = []float64{1e9, 5e8}
	s.InverseElectronDensity = []float64{1 / 1e9, 1 / 5e8}
	s.LineListNu = []float64{2e15, 1e15}
	s.TauSobolev = []float64{0.1, 0.2, 0.3, 0.4}
	s.TimeExplosion = 1e6
	s.InverseTimeExplosion = 1 / 1e6
	return s
}

func TestValidateAcceptsWellFormedSnapshot(t *testing.T) {
	require.NoError(t, validSnapshot().Validate())
}

func TestValidateRejectsNonPositiveShellCount(t *testing.T) {
	s := validSnapshot()
	s.NShells = 0
	require.Error(t, s.Validate())
}

func TestValidateRejectsInvertedShell(t *testing.T) {
	s := validSnapshot()
	s.RInner[0] = s.ROuter[0] + 1
	require.Error(t, s.Validate())
}

func TestValidateRejectsShellBoundaryGap(t *testing.T) {
	s := validSnapshot()
	s.RInner[1] = s.ROuter[0] * 1.5
	require.Error(t, s.Validate())
}

func TestValidateRejectsNonPositiveElectronDensity(t *testing.T) {
	s := validSnapshot()
	s.ElectronDensity[0] = 0
	require.Error(t, s.Validate())
}

func TestValidateRejectsWrongElectronDensityReciprocal(t *testing.T) {
	s := validSnapshot()
	s.InverseElectronDensity[0] = 1.0
	require.Error(t, s.Validate())
}

func TestValidateRejectsNonDecreasingLineList(t *testing.T) {
	s := validSnapshot()
	s.LineListNu[1] = s.LineListNu[0] + 1
	require.Error(t, s.Validate())
}

func TestValidateRejectsNegativeTauSobolev(t *testing.T) {
	s := validSnapshot()
	s.TauSobolev[0] = -1
	require.Error(t, s.Validate())
}

func TestValidateRejectsBadMacroAtomProbabilitySum(t *testing.T) {
	s := validSnapshot()
	s.MacroBlockRefs = []int{0, 1}
	s.TransitionProbabilities = []float64{0.5, 0.5}
	require.Error(t, s.Validate())
}

func TestValidateAcceptsMacroAtomProbabilitiesSummingToOne(t *testing.T) {
	s := validSnapshot()
	s.MacroBlockRefs = []int{0, 1}
	s.TransitionProbabilities = []float64{1.0, 1.0}
	require.NoError(t, s.Validate())
}

func TestValidateRejectsNonPositiveTimeExplosion(t *testing.T) {
	s := validSnapshot()
	s.TimeExplosion = 0
	require.Error(t, s.Validate())
}

func TestValidateReportsAllViolations(t *testing.T) {
	s := validSnapshot()
	s.NShells = 0
	s.TimeExplosion = -1
	err := s.Validate()
	require.Error(t, err)
	cv, ok := err.(*ContractViolationError)
	require.True(t, ok)
	require.GreaterOrEqual(t, len(cv.Violations), 2)
}
