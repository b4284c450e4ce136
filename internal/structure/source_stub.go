//go:build !cgo

package structure

import (
	"context"
	"errors"
)

// ErrNoCGO is returned when source scanning is unavailable due to missing CGO.
var ErrNoCGO = errors.New("source scanning requires CGO (tree-sitter)")

// SourceProvider derives components from Go source.
// This is a stub implementation for non-CGO builds.
type SourceProvider struct{}

// NewSourceProvider creates a source provider.
// Returns a stub when CGO is disabled.
func NewSourceProvider(root string) *SourceProvider {
	return &SourceProvider{}
}

// ListComponents always fails on non-CGO builds.
func (p *SourceProvider) ListComponents(ctx context.Context) ([]Component, error) {
	return nil, ErrNoCGO
}
