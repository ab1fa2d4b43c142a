// internal/demos/movelab/scenarios.go
package movelab

import "fmt"

func makeBuffer(l *lab, n int) *Buffer {
	l.log("\n--- makeBuffer ---")
	return l.newBuffer(n, 0x11)
}

// makeBufferValue returns the struct by value. The copy shares the byte slice.
func makeBufferValue(l *lab, n int) Buffer {
	l.log("\n--- makeBufferValue ---")
	b := l.newBuffer(n, 0x22)
	l.log("   about to return: %s", b)
	return *b
}

func makeBufferMoved(l *lab, n int) *Buffer {
	l.log("\n--- makeBufferMoved ---")
	b := l.newBuffer(n, 0x33)
	l.log("   about to return b.Move(): %s", b)
	return b.Move()
}

func returnLab(l *lab) {
	l.log("\n============================")
	l.log("=== return / copy / move lab ===")
	l.log("============================")

	a := makeBuffer(l, 128)
	l.log("returned a: %s", a)

	b := makeBufferValue(l, 256)
	l.log("returned b: %s (same bytes as the original, the header was copied)", &b)

	c := makeBufferMoved(l, 512)
	l.log("returned c: %s", c)

	d := c.Clone()
	d.data[0] = 0xFF
	l.log("clone d: %s first byte %#x, c first byte %#x", d, d.data[0], c.data[0])

	for _, x := range []*Buffer{a, c, d} {
		x.Release()
	}
	l.log("\n--- end of return lab ---")
}

func sliceGrowthLab(l *lab) {
	l.log("\n============================")
	l.log("=== slice append / grow / shrink lab ===")
	l.log("============================")

	v := make([]*Buffer, 0, 3)
	l.log("\n--- after make(len=0, cap=3) ---")

	push := func(what string, b *Buffer) {
		before := backing(v)
		oldCap := cap(v)
		v = append(v, b)
		if cap(v) != oldCap {
			l.log("[realloc] cap %d -> %d, backing %s -> %s, %d pointers copied",
				oldCap, cap(v), before, backing(v), len(v)-1)
		}
		l.log("   %s: len=%d cap=%d", what, len(v), cap(v))
	}

	l.log("\n[1] append a new buffer")
	push("append new", l.newBuffer(64, 0xAA))

	l.log("\n[2] append a temporary moved in")
	push("append moved temp", l.newBuffer(32, 0xBB).Move())

	l.log("\n[3] move an existing buffer into the slice")
	x := l.newBuffer(16, 0xCC)
	push("append x.Move()", x.Move())
	l.log("   after move, x: %s", x)

	l.log("\n[4] append past capacity triggers reallocation")
	push("append over cap", l.newBuffer(8, 0xDD))

	l.log("\n[5] grow with empty buffers")
	for len(v) < 6 {
		push("grow", l.newBuffer(0, 0))
	}

	l.log("\n[6] shrink to 2, releasing the tail")
	for _, b := range v[2:] {
		b.Release()
	}
	clear(v[2:])
	v = v[:2]
	l.log("   len=%d cap=%d", len(v), cap(v))

	for _, b := range v {
		b.Release()
	}
	l.log("\n--- end of slice lab ---")
}

// aliasingLab shows that a slice taken before a reallocation keeps the old
// backing array.
func aliasingLab(l *lab) {
	l.log("\n============================")
	l.log("=== aliasing after reallocation ===")
	l.log("============================")

	v := make([]int, 2)
	old := v
	v = append(v, 3)
	v[0] = 100
	l.log("old=%v new=%v (old still sees the previous backing array)", old, v)

	w := make([]int, 2, 4)
	view := w
	w = append(w, 3)
	w[0] = 100
	l.log("view=%v w=%v (enough capacity, both share one array)", view, w)
}

func backing(v []*Buffer) string {
	if cap(v) == 0 {
		return "0x0"
	}
	return fmt.Sprintf("%p", &v[:1][0])
}
