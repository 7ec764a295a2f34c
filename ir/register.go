package ir

import "fmt"

// RegFlag is a bitmask of register operand modifiers.
type RegFlag uint8

const (
	// FlagConst marks the operand as reading from the constant file rather
	// than the general register file.
	FlagConst RegFlag = 1 << iota
	// FlagExport marks a destination register whose write is routed to a
	// downstream stage (position, color, varying) instead of the register
	// file.
	FlagExport
	// FlagNegate negates the operand before use.
	FlagNegate
	// FlagAbs takes the absolute value of the operand before use.
	FlagAbs
)

// RegMask is the largest encodable register number (6 bits).
const RegMask = 0x3F

// Register is an operand: a register number, a set of modifier flags, and
// an optional 4-character swizzle string whose legal alphabet and meaning
// depend on the site it is used at (FETCH source/dest, ALU dest/source).
type Register struct {
	Num     uint32
	Flags   RegFlag
	Swizzle string
}

func (r RegFlag) has(f RegFlag) bool { return r&f != 0 }

func newRegister(a stringDup, num uint32, swizzle string, flags RegFlag) (*Register, error) {
	if num > RegMask {
		return nil, fmt.Errorf("ir: register number %#x exceeds %#x", num, RegMask)
	}
	dup, err := a.Strdup(swizzle)
	if err != nil {
		return nil, err
	}
	return &Register{Num: num, Flags: flags, Swizzle: dup}, nil
}

// stringDup is the subset of *arena.Arena the ir package depends on; kept as
// an interface so ir does not otherwise need to know about the arena's
// internals.
type stringDup interface {
	Strdup(s string) (string, error)
}
