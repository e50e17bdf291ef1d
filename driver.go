package tardis

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/jvshields/tardis/rng"
)

// RunConfig controls a TransportDriver run. Workers defaults to
// runtime.GOMAXPROCS(0) when zero, mirroring a bounded worker-pool fan-out
// over independent packets (no inter-packet dependencies, §5).
type RunConfig struct {
	Workers int
	Seed    uint64
	Strict  bool
	Logger  *slog.Logger
}

// Anomaly is a numeric anomaly (§7) detected during transport of one packet.
type Anomaly struct {
	PacketIndex int
	Kind        string
	Detail      string
	PacketState Packet
}

// Result is the outcome of a full TransportDriver.Run: the per-packet
// emergent nu/energy (sign encodes reabsorption), and the reduced
// per-shell estimators.
type Result struct {
	OutputNu     []float64
	OutputEnergy []float64
	J            []float64
	NuBar        []float64

	NPacketsEscaped    int
	NPacketsReabsorbed int
	Anomalies          []Anomaly
}

// initPacket sets up a packet's starting state per §4.5: it begins at the
// inner boundary of shell 0, having "just crossed" the outer boundary of
// an implicit preceding shell so that it cannot immediately re-cross the
// inner boundary it starts at without an intervening scatter.
func initPacket(snap *Snapshot, nu, mu, energy float64, src rng.Source) Packet {
	p := Packet{
		Nu:                      nu,
		Mu:                      mu,
		Energy:                  energy,
		R:                       snap.RInner[0],
		Shell:                   0,
		RecentlyCrossedBoundary: 1,
		CloseLine:               false,
		TauEvent:                src.TauEvent(),
	}
	doppler := 1 - p.Mu*p.R*snap.InverseTimeExplosion/SpeedOfLight
	nuComov := p.Nu * doppler
	p.Line = LineSearch(snap.LineListNu, nuComov)
	p.LastLine = p.Line >= snap.NLines
	return p
}

// TransportDriver iterates the EventLoop over an entire packet population
// (§4.6). It is a thin, stateless wrapper around Run — the struct exists
// so callers can hold a configured driver (e.g. one built once per
// convergence iteration by an outer driver) rather than threading a
// RunConfig through every call site.
type TransportDriver struct {
	Config RunConfig
}

// Run transports nuIn/muIn/eIn through snap using d.Config.
func (d TransportDriver) Run(ctx context.Context, snap *Snapshot, nuIn, muIn, eIn []float64) (*Result, error) {
	return Run(ctx, snap, nuIn, muIn, eIn, d.Config)
}

// Run transports nuIn/muIn/eIn (equal-length packet sources) through snap
// and returns their emergent outcomes plus the reduced J/nubar estimators.
// Packets are embarrassingly parallel: workers are fanned out over packet
// indices with a bounded semaphore, each owning a private Estimators and
// a private rng.Source seeded by splitting cfg.Seed with the worker
// index, and the final reduction sums worker-local estimators in
// worker-index order so the result is deterministic regardless of
// goroutine completion order (§5, §8 property 7).
func Run(ctx context.Context, snap *Snapshot, nuIn, muIn, eIn []float64, cfg RunConfig) (*Result, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	n := len(nuIn)
	if len(muIn) != n || len(eIn) != n {
		return nil, ErrPacketSourceLengthMismatch
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n && n > 0 {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	result := &Result{
		OutputNu:     make([]float64, n),
		OutputEnergy: make([]float64, n),
		J:            make([]float64, snap.NShells),
		NuBar:        make([]float64, snap.NShells),
	}

	if n == 0 {
		return result, nil
	}

	type shard struct {
		est        *Estimators
		anomalies  []Anomaly
		escaped    int
		reabsorbed int
	}
	shards := make([]shard, workers)
	for w := range shards {
		shards[w].est = NewEstimators(snap.NShells)
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(w, start, end int) {
			defer wg.Done()
			defer func() { <-sem }()

			src := rng.New(cfg.Seed, uint64(w))
			sh := &shards[w]

			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				p := initPacket(snap, nuIn[i], muIn[i], eIn[i], src)
				reabsorbed, anomalies, err := RunPacket(snap, src, &p, sh.est, cfg.Strict)
				if err != nil {
					sh.anomalies = append(sh.anomalies, Anomaly{
						PacketIndex: i,
						Kind:        "strict_abort",
						Detail:      err.Error(),
						PacketState: p,
					})
					continue
				}
				for _, a := range anomalies {
					sh.anomalies = append(sh.anomalies, Anomaly{
						PacketIndex: i,
						Kind:        a.Kind,
						Detail:      a.Detail,
						PacketState: a.State,
					})
				}

				if reabsorbed {
					result.OutputNu[i] = -p.Nu
					result.OutputEnergy[i] = -p.Energy
					sh.reabsorbed++
				} else {
					result.OutputNu[i] = p.Nu
					result.OutputEnergy[i] = p.Energy
					sh.escaped++
				}
			}
		}(w, start, end)
	}
	wg.Wait()

	for w := range shards {
		shards[w].est.addInto(&Estimators{J: result.J, NuBar: result.NuBar})
		result.NPacketsEscaped += shards[w].escaped
		result.NPacketsReabsorbed += shards[w].reabsorbed
		for _, a := range shards[w].anomalies {
			if !cfg.Strict {
				logger.Warn("numeric anomaly during transport",
					"packet_index", a.PacketIndex,
					"kind", a.Kind,
					"detail", a.Detail,
					"shell", a.PacketState.Shell,
					"nu", a.PacketState.Nu,
					"mu", a.PacketState.Mu,
				)
			}
			result.Anomalies = append(result.Anomalies, a)
		}
	}

	if cfg.Strict && len(result.Anomalies) > 0 {
		a := result.Anomalies[0]
		return nil, fmt.Errorf("tardis: strict mode aborted packet %d (%s)", a.PacketIndex, a.Detail)
	}

	return result, nil
}
