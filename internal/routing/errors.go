package routing

import "errors"

// Failure taxonomy for route calculation. Collaborator failures are
// classified at the client boundary and wrapped with detail; callers match
// with errors.Is.
var (
	// ErrInsufficientPoints - fewer than two waypoints were supplied.
	// Local validation, never reaches the network.
	ErrInsufficientPoints = errors.New("at least two route points are required")

	// ErrNoRouteFound - the provider answered but returned no usable trip.
	ErrNoRouteFound = errors.New("no route found between the given points")

	// ErrTimeout - the routing request exceeded the client-side deadline.
	ErrTimeout = errors.New("routing request timed out")

	// ErrServiceUnavailable - the provider answered with a 5xx status.
	ErrServiceUnavailable = errors.New("routing service unavailable")

	// ErrNotFound - the provider answered 404.
	ErrNotFound = errors.New("routing endpoint not found")

	// ErrNetwork - the provider could not be reached at all.
	ErrNetwork = errors.New("routing service unreachable")

	// ErrUnknownRouting - anything the classification above does not cover.
	ErrUnknownRouting = errors.New("routing failed")
)
