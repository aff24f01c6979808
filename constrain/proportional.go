package constrain

import (
	"math"

	"github.com/marlls1989/gohbcn/hbcn"
	"github.com/marlls1989/gohbcn/lpsolver"
	"github.com/marlls1989/gohbcn/structural"
)

type delayVarPair struct {
	max, min, slack lpsolver.VariableID
}

// directionalKey returns the ordered CircuitNode pair that a place's delay
// variable is indexed by: a channel's two forward places (Data-Data,
// Spacer-Spacer) share its own (src,dst) pair, and its two backward places
// (Data(dst)-Spacer(src), Spacer(dst)-Data(src)) share the reversed pair.
// This is the grouping the proportional generator needs in order to find a
// backward place's forward "companion" place and vice versa.
func directionalKey(p hbcn.Edge[hbcn.WeightedPlace]) structural.NodePair {
	ch := p.Place.Channel
	if hbcn.DirectionOf(p.Src, p.Dst) == hbcn.Forward {
		return ch
	}

	return structural.NodePair{Src: ch.Dst, Dst: ch.Src}
}

// Proportional runs the proportional constraint generator of §4.5: every
// channel gets one max/min/slack variable set per direction (see
// directionalKey), the max proportional to the structural weight of the
// first place of that direction, with an optional symmetric min/max margin
// bracket traded between the channel's forward and backward halves. The two
// places of one direction always share the same solved delays; they are not
// sized individually.
func Proportional(h *hbcn.StructuralHBCN, cfg Config) (hbcn.ConstrainerResult, error) {
	if cfg.CycleTime <= 0 {
		panic("constrain: cycle time must be > 0")
	}
	if cfg.MinimalDelay < 0 {
		panic("constrain: minimal delay must be >= 0")
	}

	m := lpsolver.NewModel()

	factor := m.AddVariable(lpsolver.Continuous, 0, math.Inf(1))

	arrival := make(map[hbcn.Transition]lpsolver.VariableID, h.TransitionCount())
	for _, t := range h.Transitions() {
		arrival[t] = m.AddVariable(lpsolver.Continuous, 0, math.Inf(1))
	}

	places := h.Places()

	vars := make(map[structural.NodePair]delayVarPair)
	for _, p := range places {
		key := directionalKey(p)
		if _, ok := vars[key]; ok {
			continue
		}
		vars[key] = delayVarPair{
			max:   m.AddVariable(lpsolver.Continuous, cfg.MinimalDelay, math.Inf(1)),
			min:   m.AddVariable(lpsolver.Continuous, 0, math.Inf(1)),
			slack: m.AddVariable(lpsolver.Continuous, 0, math.Inf(1)),
		}
	}

	handled := make(map[structural.NodePair]bool)

	for _, p := range places {
		key := directionalKey(p)
		dv := vars[key]

		token := 0.0
		if p.Place.Token {
			token = cfg.CycleTime
		}
		if err := m.AddConstraint(
			lpsolver.Expr(lpsolver.Term(1, dv.max), lpsolver.Term(1, arrival[p.Src]), lpsolver.Term(-1, arrival[p.Dst])),
			lpsolver.Equal, token,
		); err != nil {
			return hbcn.ConstrainerResult{}, err
		}

		if handled[key] {
			continue
		}
		handled[key] = true

		if err := m.AddConstraint(
			lpsolver.Expr(lpsolver.Term(1, dv.max), lpsolver.Term(-p.Place.Weight, factor), lpsolver.Term(-1, dv.slack)),
			lpsolver.Equal, 0,
		); err != nil {
			return hbcn.ConstrainerResult{}, err
		}

		if p.Place.IsInternal {
			continue
		}

		companionKey := structural.NodePair{Src: key.Dst, Dst: key.Src}
		companion, hasCompanion := vars[companionKey]

		if hbcn.DirectionOf(p.Src, p.Dst) == hbcn.Backward {
			if cfg.ForwardMargin != nil && hasCompanion {
				if err := m.AddConstraint(
					lpsolver.Expr(lpsolver.Term(1, dv.min), lpsolver.Term(-1, companion.max), lpsolver.Term(1, companion.min)),
					lpsolver.Equal, 0,
				); err != nil {
					return hbcn.ConstrainerResult{}, err
				}
			}
			switch {
			case cfg.BackwardMargin != nil:
				sense := lpsolver.Equal
				if cfg.ForwardMargin != nil {
					sense = lpsolver.GreaterEqual
				}
				if err := m.AddConstraint(
					lpsolver.Expr(lpsolver.Term(*cfg.BackwardMargin, dv.max), lpsolver.Term(-1, dv.min)),
					sense, 0,
				); err != nil {
					return hbcn.ConstrainerResult{}, err
				}
			case cfg.ForwardMargin != nil:
				if err := m.AddConstraint(
					lpsolver.Expr(lpsolver.Term(1, dv.max), lpsolver.Term(-1, dv.min)),
					lpsolver.GreaterEqual, 0,
				); err != nil {
					return hbcn.ConstrainerResult{}, err
				}
			}
		} else if cfg.ForwardMargin != nil {
			if err := m.AddConstraint(
				lpsolver.Expr(lpsolver.Term(*cfg.ForwardMargin, dv.max), lpsolver.Term(-1, dv.min)),
				lpsolver.Equal, 0,
			); err != nil {
				return hbcn.ConstrainerResult{}, err
			}
		}
	}

	if err := m.SetObjective(lpsolver.Expr(lpsolver.Term(1, factor)), lpsolver.Maximize); err != nil {
		return hbcn.ConstrainerResult{}, err
	}

	sol, err := m.Solve()
	if err != nil {
		return hbcn.ConstrainerResult{}, err
	}
	if !sol.Status.Succeeded() {
		return hbcn.ConstrainerResult{}, hbcn.ErrInfeasible
	}

	out := hbcn.NewDelayedHBCN()
	for _, t := range h.Transitions() {
		out.AddTransition(t)
		out.SetTime(t, hbcn.Round8(sol.Value(arrival[t])))
	}

	constraints := make(hbcn.PathConstraints)
	for _, p := range places {
		dv := vars[directionalKey(p)]
		maxVal := hbcn.Round8(sol.Value(dv.max))
		minVal := hbcn.Round8(sol.Value(dv.min))
		slackVal := hbcn.Round8(sol.Value(dv.slack))

		out.AddPlace(p.Src, p.Dst, hbcn.DelayedPlace{
			Place: p.Place,
			Delay: hbcn.DelayBounds{Min: hbcn.Some(minVal), Max: hbcn.Some(maxVal)},
			Slack: hbcn.Some(slackVal),
		})

		if p.Place.IsInternal {
			continue
		}
		key := directionalKey(p)
		if _, seen := constraints[key]; seen {
			continue
		}

		bounds := hbcn.DelayBounds{}
		if !hbcn.NearFloor(maxVal, cfg.MinimalDelay) {
			bounds.Max = hbcn.Some(maxVal)
		}
		if minVal > relativeFloorThreshold {
			bounds.Min = hbcn.Some(minVal)
		}
		if bounds.Min.Set || bounds.Max.Set {
			constraints[key] = bounds
		}
	}

	return hbcn.ConstrainerResult{
		PseudoclockPeriod: cfg.MinimalDelay,
		HBCN:              out,
		PathConstraints:   constraints,
	}, nil
}
