package domain

import "errors"

// Sentinel errors for the domain layer. Callers branch with errors.Is to
// translate these into user-facing responses.
var (
	ErrNotFound           = errors.New("domain: not found")
	ErrInvalidTitle       = errors.New("domain: title must not be empty")
	ErrDepthLimitExceeded = errors.New("domain: depth limit exceeded")
	ErrDuplicateName      = errors.New("domain: duplicate name")
	ErrInvalidPriority    = errors.New("domain: invalid priority")
	ErrInvalidMove        = errors.New("domain: only top-level tasks can move between lists")
	ErrCyclicReparent     = errors.New("domain: task cannot become its own descendant")
)
