package assemble

import (
	"fmt"

	"github.com/adrenoasm/a2xx/ir"
	"github.com/adrenoasm/a2xx/ir/swizzle"
)

// Several bits below are set without a known hardware meaning; the
// reference assembler sets them unconditionally and this implementation
// preserves them verbatim to stay bit-compatible with existing captures.
// They are not candidates for simplification.

// emitFetch packs a FETCH instruction into 3 words. idx is the
// instruction's position in the overall shader instruction stream (used
// only to choose the VERTEX idx==0 bit).
func emitFetch(instr *ir.Instruction, idx uint32, words []uint32, info *Info) error {
	if len(instr.Regs) < 2 {
		return fmt.Errorf("assemble: FETCH requires a destination and source register, got %d operands", len(instr.Regs))
	}
	dst, src := instr.Regs[0], instr.Regs[1]

	updateStats(dst, info, true)
	updateStats(src, info, false)

	dstSwiz, err := swizzle.FetchDest(dst.Swizzle)
	if err != nil {
		return err
	}

	var w0, w1, w2 uint32
	w0 = uint32(instr.FetchOp) & 0x1F
	w0 |= (src.Num & ir.RegMask) << 5
	w0 |= (dst.Num & ir.RegMask) << 12
	w0 |= (instr.ConstIndex & 0xF) << 20
	w1 = dstSwiz & 0xFFF

	switch instr.FetchOp {
	case ir.FetchVertex:
		srcSwiz, err := swizzle.FetchSource(src.Swizzle, 1)
		if err != nil {
			return err
		}
		w0 |= (srcSwiz & 0x3) << 25
		w0 |= 1 << 19
		w0 |= 1 << 24
		w0 |= 1 << 28
		if idx == 0 {
			w0 |= 1 << 27
		}

		if instr.Signed {
			w1 |= 1 << 12
		}
		w1 |= (instr.Format & 0x3F) << 16
		w1 |= 1 << 13
		if idx > 0 {
			w1 |= 1 << 30
		}

		w2 = instr.Stride & 0xFFFF

	case ir.FetchSample:
		srcSwiz, err := swizzle.FetchSource(src.Swizzle, 3)
		if err != nil {
			return err
		}
		w0 |= (srcSwiz & 0x3F) << 26
		w1 |= 0x1ffff << 12
		w2 |= 1 << 1

	default:
		return fmt.Errorf("assemble: unknown FETCH opcode %#x", instr.FetchOp)
	}

	words[0], words[1], words[2] = w0, w1, w2
	return nil
}
