package analyse

import (
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/marlls1989/gohbcn/hbcn"
)

// criticalTolerance is the absolute tolerance below which the slack-weighted
// shortest-path distance from a marked place's destination back to its
// source is treated as zero.
const criticalTolerance = 1e-6

// Cycle is one reconstructed zero-slack cycle, as an ordered edge list
// starting and ending at the same transition.
type Cycle []hbcn.Edge[hbcn.DelayedPlace]

// FindCriticalCycles enumerates the critical (zero-slack) cycles of a solved
// HBCN by single-source Bellman-Ford from the destination of every marked
// place, per §4.3: a marked place (u->v) closes a critical cycle whenever
// the slack-weighted shortest path from v back to u has total weight zero.
//
// Bellman-Ford is used rather than Dijkstra so that slightly negative
// slacks — floating-point noise from the LP solver, not a sign of an
// infeasible model — do not break the search.
func FindCriticalCycles(h *hbcn.DelayedHBCN) []Cycle {
	transitions := h.Transitions()

	ids := make(map[hbcn.Transition]int64, len(transitions))
	for i, t := range transitions {
		ids[t] = int64(i)
	}

	g := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for _, t := range transitions {
		g.AddNode(simple.Node(ids[t]))
	}

	// edgeLookup resolves a (src,dst) transition-id pair back to a
	// representative place, so the simple graph's single-weight-per-pair
	// limitation (it is not a multigraph) can still yield an edge list. When
	// a pair has multiple parallel places, the minimum slack is used as the
	// pair's weight, and that minimal place is the representative.
	type key struct{ src, dst int64 }
	edgeLookup := make(map[key]hbcn.Edge[hbcn.DelayedPlace])

	for _, p := range h.Places() {
		k := key{ids[p.Src], ids[p.Dst]}
		slack := p.Place.Slack.Value
		if existing, ok := edgeLookup[k]; !ok || slack < existing.Place.Slack.Value {
			edgeLookup[k] = p
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(k.src), simple.Node(k.dst), slack))
		}
	}

	var cycles []Cycle
	for _, p := range h.Places() {
		if !p.Place.Token {
			continue
		}

		uID, vID := ids[p.Src], ids[p.Dst]

		shortest, ok := path.BellmanFordFrom(simple.Node(vID), g)
		if !ok {
			continue // negative cycle reachable; should not occur in a correctly solved model
		}

		weight := shortest.WeightTo(uID)
		if math.IsInf(weight, 1) || math.Abs(weight) > criticalTolerance {
			continue
		}

		nodes, _ := shortest.To(uID)
		if len(nodes) == 0 {
			continue
		}

		cycle := make(Cycle, 0, len(nodes))
		cycle = append(cycle, edgeLookup[key{uID, vID}])
		for i := 0; i+1 < len(nodes); i++ {
			src := nodes[i].ID()
			dst := nodes[i+1].ID()
			if e, ok := edgeLookup[key{src, dst}]; ok {
				cycle = append(cycle, e)
			}
		}
		cycles = append(cycles, cycle)
	}

	return cycles
}
