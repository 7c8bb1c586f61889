package healthcheck

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrHierarchyCycleDetected = errors.New("hierarchy cycle detected")
	ErrHierarchyIntegrity     = errors.New("hierarchy integrity violation")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrInvalidSession         = errors.New("invalid session")
	ErrInvalidConfiguration   = errors.New("invalid configuration")
)
