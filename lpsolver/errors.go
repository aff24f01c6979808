package lpsolver

import "errors"

var (
	// ErrForeignVariable is returned when an expression references a
	// VariableID that was not created by the Model it is being added to.
	ErrForeignVariable = errors.New("lpsolver: variable belongs to a different model")
	// ErrInvalidConfig is returned by SelectBackend for an unrecognized
	// HBCN_LP_SOLVER value.
	ErrInvalidConfig = errors.New("lpsolver: invalid backend configuration")
)
