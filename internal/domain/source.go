package domain

import "context"

type sourceKey struct{}

// Change sources recorded with saved revisions.
const (
	SourceCLI = "cli"
	SourceWeb = "web"
	SourceTUI = "tui"
)

// WithSource returns a context that names the origin of a change.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

// SourceFrom returns the change origin stored in ctx, or "".
func SourceFrom(ctx context.Context) string {
	s, _ := ctx.Value(sourceKey{}).(string)
	return s
}
