// Package arena implements the bump allocator that backs every duplicated
// string (names and swizzles) in a shader; the IR node structs themselves
// are ordinary Go allocations. A shader owns exactly one Arena;
// nothing allocated from it is ever freed individually, only released in one
// shot when the owning shader is dropped.
package arena

import (
	"fmt"
	"unsafe"
)

// Arena is a fixed-capacity, append-only byte buffer. Allocation advances an
// offset rounded up to a 4-byte boundary; there is no individual free.
type Arena struct {
	buf []byte
	off int
}

// New creates an arena with the given capacity in bytes. Capacity must be
// large enough to hold every node and string the owning shader will ever
// allocate; there is no growth.
func New(capacity int) *Arena {
	if capacity <= 0 {
		capacity = 1
	}
	return &Arena{buf: make([]byte, capacity)}
}

func align4(n int) int {
	return (n + 3) &^ 3
}

// Alloc reserves n bytes and returns a slice viewing them. Running out of
// capacity is a fatal precondition violation: the caller asked for more than
// the shader was sized to hold.
func (a *Arena) Alloc(n int) ([]byte, error) {
	sz := align4(n)
	if a.off+sz > len(a.buf) {
		return nil, fmt.Errorf("arena: out of space: need %d bytes, have %d of %d free", n, len(a.buf)-a.off, len(a.buf))
	}
	b := a.buf[a.off : a.off+n : a.off+sz]
	a.off += sz
	return b, nil
}

// Strdup copies s into the arena with a trailing NUL and returns a string
// backed directly by that arena memory (no second copy), mirroring the
// reference assembler's ir_strdup. The empty string duplicates to "".
func (a *Arena) Strdup(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	b, err := a.Alloc(len(s) + 1)
	if err != nil {
		return "", err
	}
	copy(b, s)
	b[len(s)] = 0
	return unsafe.String(&b[0], len(s)), nil
}

// Used reports the number of bytes allocated so far.
func (a *Arena) Used() int {
	return a.off
}

// Cap reports the arena's total capacity in bytes.
func (a *Arena) Cap() int {
	return len(a.buf)
}
