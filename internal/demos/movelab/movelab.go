// internal/demos/movelab/movelab.go
package movelab

import (
	"context"
	"io"

	"github.com/bartek5186/memlab/internal/demos"
)

const ID = "w1_buffer_move_lab"

// Lab walks through ownership transfer of a byte buffer, returning buffers from
// functions and what append does to a slice once it runs out of capacity.
type Lab struct{}

func (l *Lab) Name() string { return "Buffer Move Lab" }
func (l *Lab) Description() string {
	return "Ownership transfer, returned values and slice growth."
}

func (l *Lab) Run(ctx context.Context, out io.Writer) error {
	lb := &lab{out: out}
	lb.log("========== Buffer Move Lab ==========")

	steps := []func(*lab){returnLab, sliceGrowthLab, aliasingLab}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		step(lb)
	}

	lb.log("\n========== Done ==========")
	return nil
}

type Module struct{}

func (m *Module) Register(r *demos.Registry) {
	r.Register(ID, "Buffer Move Lab", "Move semantics and slice reallocation",
		func() demos.Demo { return &Lab{} })
}
