package structural

import (
	"fmt"
	"sync"
)

// edgeRecord is one outgoing Channel, keyed by the destination vertex id.
type edgeRecord struct {
	dst     string
	channel Channel
}

// Graph is a directed multigraph over CircuitNode with Channel edges.
//
// It follows the locking discipline of a lvlath-style core graph: vertex
// state (the node catalog) and edge/adjacency state are guarded by separate
// mutexes, acquired one at a time, never nested. Unlike a generic
// string/int64-keyed graph store, Graph keeps CircuitNode and Channel as
// first-class typed payloads directly on the vertex/adjacency tables, since
// the domain needs float64 delays and boolean flags richer than a generic
// metadata map would carry cleanly.
type Graph struct {
	muVert sync.RWMutex
	nodes  map[string]CircuitNode
	order  []string // insertion order, for deterministic iteration

	muEdgeAdj sync.RWMutex
	adj       map[string][]edgeRecord // outgoing channels, keyed by source vertex id
	fanIn     map[string]int
}

// NewGraph constructs an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]CircuitNode),
		adj:   make(map[string][]edgeRecord),
		fanIn: make(map[string]int),
	}
}

// AddNode registers n. It returns ErrDuplicateNode if a node with the same
// (kind, name) was already added.
func (g *Graph) AddNode(n CircuitNode) error {
	id := vertexID(n)

	g.muVert.Lock()
	defer g.muVert.Unlock()

	if _, exists := g.nodes[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, n)
	}
	g.nodes[id] = n
	g.order = append(g.order, id)

	return nil
}

// HasNode reports whether n has been registered.
func (g *Graph) HasNode(n CircuitNode) bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	_, ok := g.nodes[vertexID(n)]

	return ok
}

// AddChannel adds a Channel edge from src to dst. Both endpoints must already
// be registered via AddNode, else ErrUndefinedNode is returned.
func (g *Graph) AddChannel(src, dst CircuitNode, ch Channel) error {
	srcID, dstID := vertexID(src), vertexID(dst)

	g.muVert.RLock()
	_, srcOK := g.nodes[srcID]
	_, dstOK := g.nodes[dstID]
	g.muVert.RUnlock()

	if !srcOK {
		return fmt.Errorf("%w: %s", ErrUndefinedNode, src)
	}
	if !dstOK {
		return fmt.Errorf("%w: %s", ErrUndefinedNode, dst)
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	g.adj[srcID] = append(g.adj[srcID], edgeRecord{dst: dstID, channel: ch})
	g.fanIn[dstID]++

	return nil
}

// Nodes returns all registered nodes in insertion order.
func (g *Graph) Nodes() []CircuitNode {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	out := make([]CircuitNode, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}

	return out
}

// Channels returns every channel edge in the graph, grouped by source node in
// insertion order and, within a source, in the order they were added.
func (g *Graph) Channels() []ChannelEdge {
	g.muVert.RLock()
	order := append([]string(nil), g.order...)
	nodes := g.nodes
	g.muVert.RUnlock()

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]ChannelEdge, 0)
	for _, srcID := range order {
		for _, rec := range g.adj[srcID] {
			out = append(out, ChannelEdge{
				Src:     nodes[srcID],
				Dst:     nodes[rec.dst],
				Channel: rec.channel,
			})
		}
	}

	return out
}

// FanOut returns the number of outgoing channels of n.
func (g *Graph) FanOut(n CircuitNode) int {
	id := vertexID(n)

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.adj[id])
}

// FanIn returns the number of incoming channels of n.
func (g *Graph) FanIn(n CircuitNode) int {
	id := vertexID(n)

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return g.fanIn[id]
}

// NodeCount returns the number of registered nodes.
func (g *Graph) NodeCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.nodes)
}

// ChannelCount returns the total number of channel edges.
func (g *Graph) ChannelCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	n := 0
	for _, edges := range g.adj {
		n += len(edges)
	}

	return n
}
