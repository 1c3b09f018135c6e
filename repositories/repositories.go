package repositories

import "errors"

// Sentinel errors shared by all repositories. Callers branch with
// errors.Is instead of inspecting driver errors.
var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)
