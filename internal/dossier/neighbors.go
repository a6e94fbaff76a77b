package dossier

import (
	"sort"

	"github.com/ehrlich-b/axlab/internal/battery"
	"github.com/ehrlich-b/axlab/internal/probe"
)

func implicationSignature(implications []probe.Result) map[string]int {
	sig := make(map[string]int, len(implications))
	for _, p := range implications {
		switch p.Status {
		case probe.StatusConfirmed:
			sig[p.Theory] = 1
		case probe.StatusCounterexample:
			sig[p.Theory] = -1
		default:
			sig[p.Theory] = 0
		}
	}
	return sig
}

func signatureDistance(target, candidate map[string]int) (float64, []string) {
	keys := map[string]bool{}
	for k := range target {
		keys[k] = true
	}
	for k := range candidate {
		keys[k] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var distance float64
	var sharedConfirmed []string
	for _, k := range sorted {
		l, r := target[k], candidate[k]
		d := l - r
		if d < 0 {
			d = -d
		}
		distance += float64(d)
		if l == 1 && r == 1 {
			sharedConfirmed = append(sharedConfirmed, k)
		}
	}
	return distance, sharedConfirmed
}

func nearestNeighbors(result battery.Result, peers []PeerResult, count int) []NearestNeighbor {
	if len(peers) == 0 || count <= 0 {
		return nil
	}
	targetSig := implicationSignature(result.Implications)

	neighbors := make([]NearestNeighbor, 0, len(peers))
	for _, peer := range peers {
		sig := implicationSignature(peer.Result.Implications)
		distance, shared := signatureDistance(targetSig, sig)
		neighbors = append(neighbors, NearestNeighbor{
			AxiomID:         peer.AxiomID,
			Left:            peer.Left.Serialize(),
			Right:           peer.Right.Serialize(),
			Distance:        distance,
			SharedConfirmed: shared,
		})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Distance != neighbors[j].Distance {
			return neighbors[i].Distance < neighbors[j].Distance
		}
		return neighbors[i].AxiomID < neighbors[j].AxiomID
	})
	if len(neighbors) > count {
		neighbors = neighbors[:count]
	}
	return neighbors
}
