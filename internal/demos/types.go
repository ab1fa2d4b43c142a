// internal/demos/types.go
package demos

import (
	"context"
	"io"
)

// Demo is a single runnable example. Run writes everything it wants to show to out.
type Demo interface {
	Name() string
	Description() string
	Run(ctx context.Context, out io.Writer) error
}

// Factory builds a new Demo. Each call must return a fresh instance.
type Factory func() Demo

// Entry is one catalog row.
type Entry struct {
	ID          string
	DisplayName string
	Description string
	Factory     Factory `json:"-"`
}

// Module registers one or more demos. Packages that ship demos expose a Module
// and the catalog package lists them all.
type Module interface {
	Register(r *Registry)
}
