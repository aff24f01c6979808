package structural

import "fmt"

// NodeKind tags the two variants of CircuitNode.
type NodeKind uint8

const (
	// KindPort marks a circuit node that is a primary input/output port.
	KindPort NodeKind = iota
	// KindRegister marks a circuit node that is a register stage.
	KindRegister
)

// Register base costs, in the same virtual time units as channel delays.
// Chosen once and reused by both the HBCN builder and the constraint
// generators (spec open question (a)); see DESIGN.md for the grounding.
const (
	PortBaseCost    = 0.0
	RegisterCost    = 10.0
	ControlRegCost  = 50.0
	InternalDelay   = 10.0 // fixed virtual delay of auxiliary internal channels
	registerIDSep   = "/"
	stage0Suffix    = "s0"
	stage1Suffix    = "s1"
)

// CircuitNode is the tagged-variant identifier of a port or register.
// Graph identifies nodes by (kind, name) only (see vertexID), so a second
// node with the same kind and name is a duplicate whatever its BaseCost.
// Go's == and map hashing on CircuitNode, used wherever it is a map key,
// also compare baseCost: two values naming the same register with different
// base costs are unequal there. Parse sets BaseCost consistently for a
// given name, so within a parsed Graph the two agree.
type CircuitNode struct {
	kind     NodeKind
	name     string
	baseCost float64
}

// Port constructs a port CircuitNode. Ports always carry a zero base cost.
func Port(name string) CircuitNode {
	return CircuitNode{kind: KindPort, name: name, baseCost: PortBaseCost}
}

// Register constructs a register CircuitNode with the given base cost.
func Register(name string, baseCost float64) CircuitNode {
	return CircuitNode{kind: KindRegister, name: name, baseCost: baseCost}
}

// Kind reports whether n is a Port or a Register.
func (n CircuitNode) Kind() NodeKind { return n.kind }

// Name returns the interned symbol naming this node.
func (n CircuitNode) Name() string { return n.name }

// BaseCost returns the node's additive register delay (0 for ports).
func (n CircuitNode) BaseCost() float64 { return n.baseCost }

// IsPort reports whether n is a port.
func (n CircuitNode) IsPort() bool { return n.kind == KindPort }

// String renders a human-readable form, e.g. `Port "a"` or `Register "b/s0"`.
func (n CircuitNode) String() string {
	switch n.kind {
	case KindPort:
		return fmt.Sprintf("Port %q", n.name)
	default:
		return fmt.Sprintf("Register %q (cost %g)", n.name, n.baseCost)
	}
}

// vertexID derives the underlying graph vertex identity from (kind, name),
// which is exactly CircuitNode's equality domain.
func vertexID(n CircuitNode) string {
	if n.kind == KindPort {
		return "port:" + n.name
	}
	return "reg:" + n.name
}

// ChannelPhase is the initial marking phase of a channel, which determines
// which of its four expanded HBCN places carries the initial token.
type ChannelPhase uint8

const (
	ReqData ChannelPhase = iota
	ReqNull
	AckData
	AckNull
)

func (p ChannelPhase) String() string {
	switch p {
	case ReqData:
		return "ReqData"
	case ReqNull:
		return "ReqNull"
	case AckData:
		return "AckData"
	case AckNull:
		return "AckNull"
	default:
		return "Unknown"
	}
}

// Channel is the edge payload of a StructuralGraph: the protocol phase that
// seeds the HBCN's initial marking, whether the channel is purely internal
// plumbing (and therefore excluded from path constraints), and its virtual
// propagation delay.
type Channel struct {
	InitialPhase ChannelPhase
	IsInternal   bool
	VirtualDelay float64
}

// NodePair is an ordered (source, destination) key, used for PathConstraints
// and for indexing a channel's opposite-phase companion place.
type NodePair struct {
	Src, Dst CircuitNode
}

// ChannelEdge pairs a Channel with its endpoints, as returned by
// Graph.Channels.
type ChannelEdge struct {
	Src, Dst CircuitNode
	Channel  Channel
}
