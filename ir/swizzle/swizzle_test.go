package swizzle_test

import (
	"testing"

	"github.com/adrenoasm/a2xx/ir/swizzle"
)

func TestFetchSourceVertex(t *testing.T) {
	tests := []struct {
		ch   string
		want uint32
	}{
		{"x", 0x0},
		{"y", 0x1},
		{"z", 0x2},
		{"w", 0x3},
	}
	for _, tt := range tests {
		got, err := swizzle.FetchSource(tt.ch, 1)
		if err != nil {
			t.Fatalf("FetchSource(%q, 1): %v", tt.ch, err)
		}
		if got != tt.want {
			t.Errorf("FetchSource(%q, 1) = %#x, want %#x", tt.ch, got, tt.want)
		}
	}
}

func TestFetchSourceTexture(t *testing.T) {
	// channel i occupies bits [2i,2i+1], packed high index to low.
	got, err := swizzle.FetchSource("xyz", 3)
	if err != nil {
		t.Fatal(err)
	}
	want := uint32(2<<4 | 1<<2 | 0)
	if got != want {
		t.Errorf("FetchSource(\"xyz\", 3) = %#x, want %#x", got, want)
	}
}

func TestFetchSourceWrongLength(t *testing.T) {
	if _, err := swizzle.FetchSource("xy", 1); err == nil {
		t.Fatal("expected error for wrong-length swizzle")
	}
}

func TestFetchDestAbsentIsDefault(t *testing.T) {
	got, err := swizzle.FetchDest("")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x688 {
		t.Errorf("FetchDest(\"\") = %#x, want 0x688", got)
	}
}

func TestFetchDestIdentity(t *testing.T) {
	got, err := swizzle.FetchDest("xyzw")
	if err != nil {
		t.Fatal(err)
	}
	want := uint32(0<<0 | 1<<3 | 2<<6 | 3<<9)
	if got != want {
		t.Errorf("FetchDest(\"xyzw\") = %#x, want %#x", got, want)
	}
}

func TestFetchDestMaskChannel(t *testing.T) {
	got, err := swizzle.FetchDest("xyz_")
	if err != nil {
		t.Fatal(err)
	}
	want := uint32(0<<0 | 1<<3 | 2<<6 | 7<<9)
	if got != want {
		t.Errorf("FetchDest(\"xyz_\") = %#x, want %#x", got, want)
	}
}

func TestALUDestWriteMaskAbsentIsFull(t *testing.T) {
	got, err := swizzle.ALUDestWriteMask("")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xF {
		t.Errorf("ALUDestWriteMask(\"\") = %#x, want 0xF", got)
	}
}

func TestALUDestWriteMaskAllMasked(t *testing.T) {
	got, err := swizzle.ALUDestWriteMask("____")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x0 {
		t.Errorf("ALUDestWriteMask(\"____\") = %#x, want 0x0", got)
	}
}

func TestALUDestWriteMaskPartial(t *testing.T) {
	got, err := swizzle.ALUDestWriteMask("___w")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x8 {
		t.Errorf("ALUDestWriteMask(\"___w\") = %#x, want 0x8", got)
	}
}

func TestALUDestWriteMaskInvalidChannel(t *testing.T) {
	if _, err := swizzle.ALUDestWriteMask("xyzy"); err == nil {
		t.Fatal("expected error: channel 3 is neither 'w' nor '_'")
	}
}

func TestALUSourceAbsentIsZero(t *testing.T) {
	got, err := swizzle.ALUSource("")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("ALUSource(\"\") = %#x, want 0", got)
	}
}

func TestALUSourceIdentity(t *testing.T) {
	// identity: channel i requests channel i, so (i-i) mod 4 == 0 for all.
	got, err := swizzle.ALUSource("xyzw")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("ALUSource(\"xyzw\") = %#x, want 0", got)
	}
}

func TestALUSourceRotation(t *testing.T) {
	// channel 0 requests 'w' (target 3): (3-0) mod 4 = 3.
	// channel 1 requests 'x' (target 0): (0-1) mod 4 = 3.
	got, err := swizzle.ALUSource("wxyz")
	if err != nil {
		t.Fatal(err)
	}
	want := uint32(3<<0 | 3<<2 | 3<<4 | 3<<6)
	if got != want {
		t.Errorf("ALUSource(\"wxyz\") = %#x, want %#x", got, want)
	}
}
