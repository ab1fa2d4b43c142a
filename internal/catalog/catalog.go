// Package catalog lists every demo module compiled into memlab.
// Adding a demo means adding its Module here.
package catalog

import (
	"github.com/bartek5186/memlab/internal/demos"
	"github.com/bartek5186/memlab/internal/demos/addresses"
	"github.com/bartek5186/memlab/internal/demos/movelab"
	"github.com/bartek5186/memlab/internal/demos/pointers"
)

func Modules() []demos.Module {
	return []demos.Module{
		&pointers.Module{},
		&addresses.Module{},
		&movelab.Module{},
	}
}

// Load registers all built-in demos into r.
func Load(r *demos.Registry) {
	r.RegisterModules(Modules()...)
}
