// Package lpsolver is the LP oracle: a small builder abstraction over a
// linear program, solved by an embedded simplex backend. It plays the role
// the original tool delegates to an external gurobi/coin_cbc process, but as
// a real Go dependency (gonum's simplex) rather than a subprocess.
package lpsolver

// VariableKind tags how a variable's solved value should be interpreted.
// Integer is accepted for interface completeness (the cycle-time analyzer's
// unweighted "depth" mode formally wants an integer T) but is solved via the
// continuous relaxation: HBCN scheduling LPs are difference-constraint
// systems, whose constraint matrices are totally unimodular, so the
// relaxation is already integral at any vertex optimum for this problem
// class. There is no branch-and-bound step.
type VariableKind uint8

const (
	Continuous VariableKind = iota
	Integer
)

// ConstraintSense is the relational operator of a linear constraint.
type ConstraintSense uint8

const (
	LessEqual ConstraintSense = iota
	GreaterEqual
	Equal
)

// OptimizationSense is the direction of the objective.
type OptimizationSense uint8

const (
	Minimize OptimizationSense = iota
	Maximize
)

// OptimizationStatus is the oracle's verdict.
type OptimizationStatus uint8

const (
	Optimal OptimizationStatus = iota
	Feasible
	Infeasible
	Unbounded
	InfeasibleOrUnbounded
	Other
)

func (s OptimizationStatus) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Feasible:
		return "Feasible"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	case InfeasibleOrUnbounded:
		return "InfeasibleOrUnbounded"
	default:
		return "Other"
	}
}

// Succeeded reports whether s represents a usable solution.
func (s OptimizationStatus) Succeeded() bool { return s == Optimal || s == Feasible }

// VariableID identifies a variable within the Model that created it.
// Expressions and constraints built from one Model's variables are rejected
// by another Model's AddConstraint/SetObjective (checked at call time,
// against model identity) so that mixing variables across models fails
// loudly rather than silently producing a nonsense LP.
type VariableID struct {
	model *Model
	index int
}

// LinearTerm is one coefficient*variable summand of a LinearExpression.
type LinearTerm struct {
	Coefficient float64
	Variable    VariableID
}

// LinearExpression is a sum of LinearTerms, i.e. a linear combination of
// variables (no constant term — callers fold constants into the constraint
// RHS or the objective's constant offset where needed).
type LinearExpression []LinearTerm

// Term constructs a single-variable LinearTerm with the given coefficient.
func Term(coeff float64, v VariableID) LinearTerm {
	return LinearTerm{Coefficient: coeff, Variable: v}
}

// Expr builds a LinearExpression from individual terms.
func Expr(terms ...LinearTerm) LinearExpression { return LinearExpression(terms) }

// Plus returns a new expression with t appended.
func (e LinearExpression) Plus(t LinearTerm) LinearExpression {
	out := make(LinearExpression, len(e), len(e)+1)
	copy(out, e)

	return append(out, t)
}
