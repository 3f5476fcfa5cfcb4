package interfaces

import "context"

// Shortener converts a long URL into a short one
type Shortener interface {
	Shorten(ctx context.Context, url string) (string, error)
}

// ErrorReporter sends errors that are not surfaced to the caller to an observability backend
type ErrorReporter interface {
	Report(ctx context.Context, err error)
}
