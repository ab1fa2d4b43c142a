// internal/demos/pointers/pointers.go
package pointers

import (
	"context"
	"fmt"
	"io"
	"unsafe"

	"github.com/bartek5186/memlab/internal/demos"
)

const ID = "d01_pointer_start"

// Basics shows how big a value and a pointer are, where new() puts data and what
// happens to a pointer once it is dropped.
type Basics struct{}

func (b *Basics) Name() string        { return "Smart Pointer Basics" }
func (b *Basics) Description() string { return "Pointers and memory, the basics." }

func (b *Basics) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var v int
	p := new(int)
	*p = 42
	box := &holder{val: p}

	fmt.Fprintf(out, "int size: %d\n", unsafe.Sizeof(v))
	fmt.Fprintf(out, "p size: %d\n", unsafe.Sizeof(p))
	fmt.Fprintf(out, "p address: %p value: %d\n", p, *p)
	fmt.Fprintf(out, "holder size: %d\n", unsafe.Sizeof(*box))
	fmt.Fprintf(out, "holder points at: %p\n", box.val)

	// dropping the only references hands the int back to the GC
	box.release()
	fmt.Fprintf(out, "holder after release: %v\n", box.val)
	p = nil
	fmt.Fprintf(out, "p after nil: %v\n", p)
	return nil
}

// holder plays the owning-wrapper role: the only thing keeping val alive.
type holder struct {
	val *int
}

func (h *holder) release() { h.val = nil }

type Module struct{}

func (m *Module) Register(r *demos.Registry) {
	r.Register(ID, "Smart Pointer Basics", "Smart pointer basic usage",
		func() demos.Demo { return &Basics{} })
}
