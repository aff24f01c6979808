// Package hbcn defines the shared vocabulary of the Half-Buffer Channel
// Network model — transitions, places, and the directed multigraph that
// relates them — used by both the cycle-time analyzer and the constraint
// generators. It owns no solving logic of its own, mirroring the teacher
// repo's practice of a small shared data-model package underneath several
// independent algorithm packages.
package hbcn

import (
	"fmt"

	"github.com/marlls1989/gohbcn/structural"
)

// TransitionKind tags the two transition variants.
type TransitionKind uint8

const (
	// Data marks the propagation of a data value at a circuit node.
	Data TransitionKind = iota
	// Spacer marks the propagation of a null/spacer value at a circuit node.
	Spacer
)

func (k TransitionKind) String() string {
	if k == Data {
		return "Data"
	}

	return "Spacer"
}

// Transition is a tagged {Data(node), Spacer(node)} event. Graph keys
// transitions by variant and the node's (kind, name) (see id). Go's native
// struct equality, used where a Transition is a map key, compares the
// embedded CircuitNode in full, base cost included.
type Transition struct {
	Kind TransitionKind
	Node structural.CircuitNode
}

// DataT constructs the Data transition of node.
func DataT(node structural.CircuitNode) Transition { return Transition{Kind: Data, Node: node} }

// SpacerT constructs the Spacer transition of node.
func SpacerT(node structural.CircuitNode) Transition { return Transition{Kind: Spacer, Node: node} }

func (t Transition) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Node)
}

func (t Transition) id() string {
	return t.Kind.String() + ":" + transitionNodeID(t.Node)
}

func transitionNodeID(n structural.CircuitNode) string {
	if n.IsPort() {
		return "port:" + n.Name()
	}

	return "reg:" + n.Name()
}

// Direction classifies a place by its endpoints.
type Direction uint8

const (
	// Forward places connect same-phase transitions (Data-Data or Spacer-Spacer).
	Forward Direction = iota
	// Backward places connect opposite-phase transitions.
	Backward
)

// Place is the common payload of every HBCN edge.
type Place struct {
	Token      bool
	IsInternal bool
	// Channel is the (source, destination) CircuitNode pair of the
	// structural channel this place was expanded from. All four places
	// expanded from one channel share the same Channel value; constraint
	// generators use it to group places back into per-channel variables and
	// to key PathConstraints.
	Channel structural.NodePair
}

// WeightedPlace decorates a Place with its structural weight, the output of
// the HBCN builder.
type WeightedPlace struct {
	Place
	Weight float64
}

// Bound is an optional non-negative delay bound.
type Bound struct {
	Value float64
	Set   bool
}

// Some constructs a set Bound.
func Some(v float64) Bound { return Bound{Value: v, Set: true} }

// DelayBounds is a place's solved {min?, max?} delay payload.
type DelayBounds struct {
	Min Bound
	Max Bound
}

// DelayedPlace decorates a Place with its solved delay bounds and slack, the
// output of the cycle-time analyzer and the constraint generators.
type DelayedPlace struct {
	Place
	Delay DelayBounds
	Slack Bound
}

// TransitionEvent is the analyzer's per-node decoration: the worst-case
// schedule arrival time of a transition.
type TransitionEvent struct {
	Time       float64
	Transition Transition
}

// edge is one directed arc of a Graph, generic over the place payload type.
type edge[P any] struct {
	Src, Dst Transition
	Place    P
}

// Graph is a directed multigraph of Transitions connected by places of
// payload type P. StructuralHBCN uses WeightedPlace; DelayedHBCN uses
// DelayedPlace.
//
// Like the structural package's Graph, this is a node-indexed arena:
// transitions are dense-keyed by their (kind, node) identity and places are
// edge records, never an owning tree of pointers, since the HBCN is
// inherently cyclic.
type Graph[P any] struct {
	transitions map[string]Transition
	order       []string
	out         map[string][]edge[P]
	in          map[string][]edge[P]
}

// StructuralHBCN is the HBCN builder's output: places carry only a weight.
type StructuralHBCN = Graph[WeightedPlace]

// DelayedHBCN is the analyzer/generator output: places carry solved delay
// bounds and slack, and every transition carries its solved arrival time.
// Unlike StructuralHBCN it is not a bare Graph alias, since its nodes need a
// payload (time) that StructuralHBCN's nodes do not.
type DelayedHBCN struct {
	*Graph[DelayedPlace]
	times map[Transition]float64
}

// NewDelayedHBCN constructs an empty DelayedHBCN.
func NewDelayedHBCN() *DelayedHBCN {
	return &DelayedHBCN{Graph: NewGraph[DelayedPlace](), times: make(map[Transition]float64)}
}

// SetTime records the solved arrival time of t.
func (d *DelayedHBCN) SetTime(t Transition, time float64) {
	d.times[t] = time
}

// Time returns the solved arrival time of t (0 if none was recorded); Events
// gives the TransitionEvent form.
func (d *DelayedHBCN) Time(t Transition) float64 { return d.times[t] }

// Events returns every transition decorated with its solved arrival time.
func (d *DelayedHBCN) Events() []TransitionEvent {
	ts := d.Transitions()
	out := make([]TransitionEvent, 0, len(ts))
	for _, t := range ts {
		out = append(out, TransitionEvent{Time: d.times[t], Transition: t})
	}

	return out
}

// NewGraph constructs an empty Graph.
func NewGraph[P any]() *Graph[P] {
	return &Graph[P]{
		transitions: make(map[string]Transition),
		out:         make(map[string][]edge[P]),
		in:          make(map[string][]edge[P]),
	}
}

// AddTransition registers t if not already present; it is a no-op if t was
// already added, since the builder adds Data/Spacer transitions once per
// node but channels may reference the same endpoint repeatedly.
func (g *Graph[P]) AddTransition(t Transition) {
	id := t.id()
	if _, ok := g.transitions[id]; ok {
		return
	}
	g.transitions[id] = t
	g.order = append(g.order, id)
}

// AddPlace adds a place from src to dst. Both transitions must already be
// registered via AddTransition.
func (g *Graph[P]) AddPlace(src, dst Transition, p P) {
	e := edge[P]{Src: src, Dst: dst, Place: p}
	g.out[src.id()] = append(g.out[src.id()], e)
	g.in[dst.id()] = append(g.in[dst.id()], e)
}

// Transitions returns every registered transition, in insertion order.
func (g *Graph[P]) Transitions() []Transition {
	out := make([]Transition, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.transitions[id])
	}

	return out
}

// Places returns every place in the graph, grouped by source transition in
// insertion order.
func (g *Graph[P]) Places() []Edge[P] {
	out := make([]Edge[P], 0)
	for _, id := range g.order {
		out = append(out, g.out[id]...)
	}

	return out
}

// Out returns the outgoing places of t.
func (g *Graph[P]) Out(t Transition) []Edge[P] { return g.out[t.id()] }

// In returns the incoming places of t.
func (g *Graph[P]) In(t Transition) []Edge[P] { return g.in[t.id()] }

// TransitionCount returns the number of registered transitions.
func (g *Graph[P]) TransitionCount() int { return len(g.transitions) }

// PlaceCount returns the total number of places.
func (g *Graph[P]) PlaceCount() int {
	n := 0
	for _, es := range g.out {
		n += len(es)
	}

	return n
}

// DirectionOf classifies a place by its endpoints: Forward if both are Data
// or both are Spacer, Backward otherwise.
func DirectionOf(src, dst Transition) Direction {
	if src.Kind == dst.Kind {
		return Forward
	}

	return Backward
}

// PathConstraints maps a non-internal (source, destination) CircuitNode pair
// to its solved {min?, max?} delay bounds.
type PathConstraints map[structural.NodePair]DelayBounds

// ConstrainerResult is the output of a constraint generator.
type ConstrainerResult struct {
	PseudoclockPeriod float64
	HBCN              *DelayedHBCN
	PathConstraints   PathConstraints
}

// Edge is the exported alias of a place together with its endpoints, used by
// analyse and constrain to iterate Places().
type Edge[P any] = edge[P]
