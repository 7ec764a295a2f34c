// Package assemble implements the two-phase resolve-then-emit assembler:
// the Resolver aligns clause addresses and computes per-EXEC sequence
// bitmaps, then the CF, FETCH, and ALU emitters pack clauses and
// instructions into the target's bit-exact 32-bit word layout.
package assemble

// CF clause opcodes, packed into the op nibble of the CF pair layout.
const (
	cfOpNOP      = 0x0
	cfOpEXEC     = 0x1
	cfOpEXECEND  = 0x2
	cfOpALLOC    = 0xC
)

// ALLOC clause allocation-type nibble values.
const (
	allocTypeCoord = 0x2
	allocTypeOther = 0x4
)
