package offload

// notFoundError signals an unknown resource id for 404 mapping.
type notFoundError struct{ id string }

func (e notFoundError) Error() string { return "resource not found: " + e.id }

// ErrNotFound returns an error for a resource id absent from the registry.
func ErrNotFound(id string) error { return notFoundError{id: id} }

// IsNotFound reports whether the error indicates a missing resource id.
func IsNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}

// dependencyUnavailableError signals a missing external dependency (e.g. a
// runtime built without the llama tag) so the HTTP layer can return 503.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed
// runtime dependency.
func IsDependencyUnavailable(err error) bool {
	_, ok := err.(dependencyUnavailableError)
	return ok
}
