package structural

import "errors"

// Sentinel errors returned by Graph and Parse. Wrap with fmt.Errorf("...: %w", ...)
// at call boundaries so callers can still errors.Is against these.
var (
	// ErrDuplicateNode is returned when a node name is declared more than once.
	ErrDuplicateNode = errors.New("structural: duplicate node declaration")
	// ErrUndefinedNode is returned when a channel references a node that was
	// never declared.
	ErrUndefinedNode = errors.New("structural: reference to undefined node")
	// ErrSyntax is returned by Parse on any malformed input.
	ErrSyntax = errors.New("structural: syntax error")
)
