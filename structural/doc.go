// Package structural models the structural description of an asynchronous
// circuit: ports and registers (CircuitNode) wired together by Channel
// edges, each carrying a virtual propagation delay, a protocol phase and an
// internal/external flag.
//
// Graph is a directed multigraph with adjacency-list storage and separate
// locks for vertex and edge/adjacency state, following the lvlath
// core.Graph locking discipline. It is its own arena rather than a wrapper
// around a generic graph: CircuitNode and Channel values are stored directly
// in its vertex and adjacency tables.
//
// Parse implements the structural-graph text format described in the
// project's external-interfaces contract: Port/NullReg/DataReg/UnsafeReg/
// ControlReg declarations with an adjacency list of (destination, delay)
// pairs. DataReg and UnsafeReg expand into one or two auxiliary register
// stages (name/s0, name/s1) joined by internal channels.
package structural
