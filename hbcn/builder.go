package hbcn

import (
	"math/bits"

	"github.com/marlls1989/gohbcn/structural"
)

// DefaultRegisterDelay is the register-delay constant R used by both the
// cost model below and the constraint generators, taken from the original
// tool's DEFAULT_REGISTER_DELAY so that analyzer and generator agree on
// absolute cycle times.
const DefaultRegisterDelay = 10.0

// ceilLog2 computes ceil(log2(n)) as BITS - leading_zeros(n) over a 64-bit
// width, which gives ceilLog2(0) = 0, ceilLog2(1) = 1, ceilLog2(4) = 3.
func ceilLog2(n int) float64 {
	if n < 0 {
		n = 0
	}

	return float64(64 - bits.LeadingZeros64(uint64(n)))
}

// backwardCost is R * ceilLog2(fan_out(x)).
func backwardCost(r float64, fanOut int) float64 { return r * ceilLog2(fanOut) }

// forwardCost is R * ceilLog2(fan_in(x)).
func forwardCost(r float64, fanIn int) float64 { return r * ceilLog2(fanIn) }

// FromStructuralGraph expands a StructuralGraph into a StructuralHBCN,
// following the cost model: every node gets a Data and a Spacer transition;
// every channel expands into four places (two forward, two backward) with
// weights derived from fan-in/fan-out register costs, and exactly one of
// the four carries the channel's initial token.
//
// forwardCompletion selects whether a channel's forward places use the raw
// virtual delay (false) or the larger of the virtual delay and the
// downstream register's forward completion cost (true).
func FromStructuralGraph(g *structural.Graph, r float64, forwardCompletion bool) *StructuralHBCN {
	h := NewGraph[WeightedPlace]()

	for _, n := range g.Nodes() {
		h.AddTransition(DataT(n))
		h.AddTransition(SpacerT(n))
	}

	for _, ch := range g.Channels() {
		u, v := ch.Src, ch.Dst

		fwd := forwardCost(r, g.FanIn(v)) + u.BaseCost()
		if forwardCompletion {
			if ch.Channel.VirtualDelay > fwd {
				fwd = ch.Channel.VirtualDelay
			}
		} else {
			fwd = ch.Channel.VirtualDelay
		}

		bwd := backwardCost(r, g.FanOut(u)) + v.BaseCost()

		phase := ch.Channel.InitialPhase
		internal := ch.Channel.IsInternal
		channelPair := structural.NodePair{Src: u, Dst: v}

		h.AddPlace(DataT(u), DataT(v), WeightedPlace{
			Place:  Place{Token: phase == structural.ReqData, IsInternal: internal, Channel: channelPair},
			Weight: fwd,
		})
		h.AddPlace(SpacerT(u), SpacerT(v), WeightedPlace{
			Place:  Place{Token: phase == structural.ReqNull, IsInternal: internal, Channel: channelPair},
			Weight: fwd,
		})
		h.AddPlace(DataT(v), SpacerT(u), WeightedPlace{
			Place:  Place{Token: phase == structural.AckData, IsInternal: internal, Channel: channelPair},
			Weight: bwd,
		})
		h.AddPlace(SpacerT(v), DataT(u), WeightedPlace{
			Place:  Place{Token: phase == structural.AckNull, IsInternal: internal, Channel: channelPair},
			Weight: bwd,
		})
	}

	return h
}
