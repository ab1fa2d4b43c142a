// internal/demos/movelab/buffer.go
package movelab

import (
	"fmt"
	"io"
)

// lab hands out buffer ids and owns the trace output. One per run, so ids start
// at 1 every time the demo runs.
type lab struct {
	out    io.Writer
	nextID int
}

func (l *lab) log(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

func (l *lab) id() int {
	l.nextID++
	return l.nextID
}

// Buffer owns a block of bytes. Ownership moves explicitly with Move; the source
// is left empty, which is the closest Go gets to a moved-from object.
type Buffer struct {
	lab  *lab
	id   int
	data []byte
}

func (l *lab) newBuffer(size int, fill byte) *Buffer {
	b := &Buffer{lab: l, id: l.id()}
	if size > 0 {
		b.data = make([]byte, size)
		for i := range b.data {
			b.data[i] = fill
		}
	}
	l.log("[ctor] Buffer#%d size=%d data=%s", b.id, len(b.data), b.ptr())
	return b
}

// Move transfers the bytes to a new Buffer with a new id.
func (b *Buffer) Move() *Buffer {
	nb := &Buffer{lab: b.lab, id: b.lab.id(), data: b.data}
	b.data = nil
	b.lab.log("[move] Buffer#%d <= moved-from Buffer#%d size=%d data=%s", nb.id, b.id, len(nb.data), nb.ptr())
	return nb
}

// Clone deep-copies the bytes.
func (b *Buffer) Clone() *Buffer {
	nb := &Buffer{lab: b.lab, id: b.lab.id()}
	if len(b.data) > 0 {
		nb.data = append([]byte(nil), b.data...)
	}
	b.lab.log("[copy] Buffer#%d <= Buffer#%d size=%d data=%s", nb.id, b.id, len(nb.data), nb.ptr())
	return nb
}

func (b *Buffer) Release() {
	b.lab.log("[release] Buffer#%d size=%d data=%s", b.id, len(b.data), b.ptr())
	b.data = nil
}

func (b *Buffer) Len() int    { return len(b.data) }
func (b *Buffer) Empty() bool { return len(b.data) == 0 }

func (b *Buffer) String() string {
	s := fmt.Sprintf("Buffer#%d size=%d data=%s", b.id, len(b.data), b.ptr())
	if b.Empty() {
		s += " (empty)"
	}
	return s
}

func (b *Buffer) ptr() string {
	if len(b.data) == 0 {
		return "0x0"
	}
	return fmt.Sprintf("%p", &b.data[0])
}
