package tardis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func driverTestSnapshot() *Snapshot {
	s := NewSnapshot(2, 0)
	s.RInner = []float64{1e14, 1.5e14}
	s.ROuter = []float64{1.5e14, 2.2e14}
	s.ElectronDensity = []float64{1e-12, 1e-12}
	s.InverseElectronDensity = []float64{1e12, 1e12}
	s.LineListNu = []float64{}
	s.TauSobolev = []float64{}
	s.LineInteraction = Scatter
	s.TimeExplosion = 1e6
	s.InverseTimeExplosion = 1e-6
	return s
}

func uniformPacketSource(n int) (nu, mu, energy []float64) {
	nu = make([]float64, n)
	mu = make([]float64, n)
	energy = make([]float64, n)
	for i := 0; i < n; i++ {
		nu[i] = 1e15
		mu[i] = -1 + 2*float64(i)/float64(n-1)
		energy[i] = 1.0 / float64(n)
	}
	return nu, mu, energy
}

func TestRunRejectsMismatchedPacketSourceLengths(t *testing.T) {
	snap := driverTestSnapshot()
	_, err := Run(context.Background(), snap, []float64{1, 2}, []float64{1}, []float64{1, 2}, RunConfig{Seed: 1})
	require.ErrorIs(t, err, ErrPacketSourceLengthMismatch)
}

func TestRunEveryPacketEscapesOrIsReabsorbedOnce(t *testing.T) {
	snap := driverTestSnapshot()
	nu, mu, energy := uniformPacketSource(500)

	result, err := Run(context.Background(), snap, nu, mu, energy, RunConfig{Seed: 1, Workers: 4})
	require.NoError(t, err)
	require.Equal(t, len(nu), result.NPacketsEscaped+result.NPacketsReabsorbed)

	for i := range nu {
		if result.OutputEnergy[i] < 0 {
			require.Less(t, result.OutputNu[i], 0.0)
		} else {
			require.GreaterOrEqual(t, result.OutputNu[i], 0.0)
		}
	}
}

// Same seed, same worker count, same packet source: the deterministic
// worker-index-ordered reduction (driver.go) must give a bit-for-bit
// identical result across repeated runs.
func TestRunIsDeterministicGivenSeedAndWorkers(t *testing.T) {
	snap := driverTestSnapshot()
	nu, mu, energy := uniformPacketSource(500)

	r1, err := Run(context.Background(), snap, nu, mu, energy, RunConfig{Seed: 99, Workers: 4})
	require.NoError(t, err)
	r2, err := Run(context.Background(), snap, nu, mu, energy, RunConfig{Seed: 99, Workers: 4})
	require.NoError(t, err)

	require.Equal(t, r1.J, r2.J)
	require.Equal(t, r1.NuBar, r2.NuBar)
	require.Equal(t, r1.OutputNu, r2.OutputNu)
	require.Equal(t, r1.NPacketsEscaped, r2.NPacketsEscaped)
}

func TestRunRespectsContextCancellation(t *testing.T) {
	snap := driverTestSnapshot()
	nu, mu, energy := uniformPacketSource(1000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, snap, nu, mu, energy, RunConfig{Seed: 1, Workers: 1})
	require.NoError(t, err)
	// A cancelled context aborts mid-shard: not every packet necessarily
	// finishes, but the call must still return cleanly.
	require.LessOrEqual(t, result.NPacketsEscaped+result.NPacketsReabsorbed, len(nu))
}

func TestRunEmptyPacketSource(t *testing.T) {
	snap := driverTestSnapshot()
	result, err := Run(context.Background(), snap, nil, nil, nil, RunConfig{Seed: 1})
	require.NoError(t, err)
	require.Equal(t, 0, result.NPacketsEscaped+result.NPacketsReabsorbed)
}
