package tardis

import (
	"fmt"
	"math"

	"github.com/jvshields/tardis/rng"
)

type event int

const (
	eventOuter event = iota
	eventInner
	eventElectron
	eventLine
)

// anomalyEvent is a numeric anomaly detected mid-transport (§7). RunPacket
// collects these rather than logging directly, so the logging library
// dependency stays out of the hot inner loop and lives in the driver.
type anomalyEvent struct {
	Kind   string
	Detail string
	State  Packet
}

// RunPacket runs the per-packet event loop until the packet escapes the
// outer boundary or is reabsorbed at the inner boundary. strict controls
// whether a numeric anomaly aborts the packet (returning err) or is
// tolerated and recorded for the caller to log.
func RunPacket(snap *Snapshot, src rng.Source, p *Packet, est *Estimators, strict bool) (reabsorbed bool, anomalies []anomalyEvent, err error) {
	invT := snap.InverseTimeExplosion

	for {
		shell := p.Shell

		dOut := DistanceToOuter(p.R, p.Mu, snap.ROuter[shell])

		dIn := Miss
		if p.RecentlyCrossedBoundary != 1 {
			dIn = DistanceToInner(p.R, p.Mu, snap.RInner[shell])
		}

		var dLine, lineNu float64
		switch {
		case p.CloseLine:
			// The packet sits exactly at the previous line's location;
			// process the immediately adjacent line at zero distance.
			dLine = 0
		case p.LastLine:
			// No more lines to check; the line branch must never win.
			dLine = Miss
		default:
			lineNu = snap.LineListNu[p.Line]
			dCurr := 1 - p.Mu*p.R*invT/SpeedOfLight
			dLine = ((p.Nu*dCurr - lineNu) / p.Nu) * SpeedOfLight / invT
			if dLine < 0 || math.IsNaN(dLine) {
				a := anomalyEvent{
					Kind:   "negative_d_line",
					Detail: fmt.Sprintf("d_line=%.6g nu=%.6g nu_line=%.6g shell=%d line=%d", dLine, p.Nu, lineNu, shell, p.Line),
					State:  *p,
				}
				if strict {
					return false, nil, fmt.Errorf("tardis: %s: %s", a.Kind, a.Detail)
				}
				anomalies = append(anomalies, a)
				dLine = 0
			}
		}

		dE := p.TauEvent * snap.InverseElectronDensity[shell] / ThomsonCrossSection

		kind, dMin := argmin(dOut, dIn, dE, dLine)

		switch kind {
		case eventOuter:
			Move(p, dMin, invT, est, shell)
			if shell < snap.NShells-1 {
				p.Shell++
				p.RecentlyCrossedBoundary = 1
				continue
			}
			return false, anomalies, nil

		case eventInner:
			Move(p, dMin, invT, est, shell)
			if shell > 0 {
				p.Shell--
				p.RecentlyCrossedBoundary = -1
				continue
			}
			return true, anomalies, nil

		case eventElectron:
			doppler := Move(p, dMin, invT, est, shell)
			comovNu := p.Nu * doppler
			comovEnergy := p.Energy * doppler

			muNew := src.IsotropicMu()
			p.Mu = muNew
			inverseDoppler := 1 / (1 - muNew*p.R*invT/SpeedOfLight)

			p.Nu = comovNu * inverseDoppler
			p.Energy = comovEnergy * inverseDoppler
			p.TauEvent = src.TauEvent()
			p.RecentlyCrossedBoundary = 0

			if snap.CompatMode {
				// Historical behavior: the line cursor is left stale,
				// see DESIGN.md Open Question decision 2/4.
			} else {
				p.Line = LineSearch(snap.LineListNu, comovNu)
				p.LastLine = p.Line >= snap.NLines
				p.CloseLine = false
			}
			continue

		case eventLine:
			p.CloseLine = false
			preLine := p.Line
			tauLine := snap.TauSobolev[shell*snap.NLines+preLine]
			tauE := ThomsonCrossSection * snap.ElectronDensity[shell] * dMin
			tauCombined := tauLine + tauE

			p.Line++
			if p.Line >= snap.NLines {
				p.Line = snap.NLines
				p.LastLine = true
			}

			nuLineForCloseCheck := snap.LineListNu[preLine]

			if p.TauEvent < tauCombined {
				doppler := Move(p, dMin, invT, est, shell)
				comovEnergy := p.Energy * doppler

				muNew := src.IsotropicMu()
				p.Mu = muNew
				inverseDoppler := 1 / (1 - muNew*p.R*invT/SpeedOfLight)

				var emissionLineID int
				if snap.LineInteraction == Scatter {
					emissionLineID = preLine
				} else {
					emissionLineID = Emit(snap, src, snap.Line2MacroUpper[preLine], shell)
				}

				emissionNu := snap.LineListNu[emissionLineID]
				p.Nu = emissionNu * inverseDoppler
				p.Energy = comovEnergy * inverseDoppler
				p.Line = emissionLineID + 1
				p.LastLine = p.Line >= snap.NLines
				p.TauEvent = src.TauEvent()
				p.RecentlyCrossedBoundary = 0

				nuLineForCloseCheck = emissionNu
			} else {
				p.TauEvent -= tauLine
			}

			if !p.LastLine {
				next := snap.LineListNu[p.Line]
				if math.Abs(next-nuLineForCloseCheck)/nuLineForCloseCheck < CloseLineThreshold {
					p.CloseLine = true
				}
			}
			continue
		}
	}
}

// argmin returns the smallest of the four candidate distances and which
// event it corresponds to.
func argmin(dOut, dIn, dE, dLine float64) (event, float64) {
	kind, best := eventOuter, dOut
	if dIn < best {
		kind, best = eventInner, dIn
	}
	if dE < best {
		kind, best = eventElectron, dE
	}
	if dLine < best {
		kind, best = eventLine, dLine
	}
	return kind, best
}
