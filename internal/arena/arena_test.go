package arena_test

import (
	"testing"

	"github.com/adrenoasm/a2xx/internal/arena"
)

func TestStrdupRoundTrips(t *testing.T) {
	a := arena.New(64)
	got, err := a.Strdup("hello")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("Strdup returned %q, want %q", got, "hello")
	}
}

func TestStrdupEmpty(t *testing.T) {
	a := arena.New(64)
	got, err := a.Strdup("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("Strdup(\"\") = %q, want empty", got)
	}
	if a.Used() != 0 {
		t.Errorf("Strdup(\"\") should not consume arena space, used=%d", a.Used())
	}
}

func TestStrdupMultipleIndependent(t *testing.T) {
	a := arena.New(64)
	s1, err := a.Strdup("abc")
	if err != nil {
		t.Fatal(err)
	}
	s2, err := a.Strdup("xyz")
	if err != nil {
		t.Fatal(err)
	}
	if s1 != "abc" || s2 != "xyz" {
		t.Fatalf("got s1=%q s2=%q", s1, s2)
	}
}

func TestAllocOutOfSpaceIsFatal(t *testing.T) {
	a := arena.New(4)
	if _, err := a.Alloc(5); err == nil {
		t.Fatal("expected out-of-space error")
	}
}

func TestAllocAlignsTo4Bytes(t *testing.T) {
	a := arena.New(16)
	if _, err := a.Alloc(1); err != nil {
		t.Fatal(err)
	}
	if a.Used() != 4 {
		t.Errorf("Used() = %d after 1-byte alloc, want 4 (rounded up)", a.Used())
	}
}
