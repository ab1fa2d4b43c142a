// internal/demos/addresses/addresses.go
package addresses

import (
	"context"
	"fmt"
	"io"
	"unsafe"

	"github.com/bartek5186/memlab/internal/demos"
)

const ID = "d02_memory_addr"

type Display struct{}

func (d *Display) Name() string        { return "Memory Address Basics" }
func (d *Display) Description() string { return "Memory address walkthrough." }

type record struct {
	flag  bool
	count int32
	total int64
	tag   byte
}

func (d *Display) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a, b := 1, 2
	fmt.Fprintf(out, "&a = %p\n&b = %p\n", &a, &b)

	var arr [4]int64
	base := uintptr(unsafe.Pointer(&arr[0]))
	for i := range arr {
		addr := uintptr(unsafe.Pointer(&arr[i]))
		fmt.Fprintf(out, "arr[%d] at %#x (+%d)\n", i, addr, addr-base)
	}
	fmt.Fprintf(out, "stride: %d bytes\n", unsafe.Sizeof(arr[0]))

	var r record
	fmt.Fprintf(out, "record size: %d align: %d\n", unsafe.Sizeof(r), unsafe.Alignof(r))
	fmt.Fprintf(out, "  flag  offset %d\n", unsafe.Offsetof(r.flag))
	fmt.Fprintf(out, "  count offset %d\n", unsafe.Offsetof(r.count))
	fmt.Fprintf(out, "  total offset %d\n", unsafe.Offsetof(r.total))
	fmt.Fprintf(out, "  tag   offset %d\n", unsafe.Offsetof(r.tag))
	return nil
}

type Module struct{}

func (m *Module) Register(r *demos.Registry) {
	r.Register(ID, "Memory Address Basics", "Memory address walkthrough",
		func() demos.Demo { return &Display{} })
}
