package hbcn

import "errors"

// ErrMalformedHBCN names an HBCN invariant violation: a fatal implementation
// bug, never a recoverable user error. FromStructuralGraph builds each
// channel's four places directly and runs no invariant check, so nothing in
// this package currently returns it or panics with it.
var ErrMalformedHBCN = errors.New("hbcn: malformed network")

// ErrInfeasible is the shared failure kind returned by the cycle-time
// analyzer and both constraint generators whenever the LP oracle reports
// any status other than Optimal or Feasible.
var ErrInfeasible = errors.New("hbcn: infeasible")
