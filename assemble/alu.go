package assemble

import (
	"fmt"

	"github.com/adrenoasm/a2xx/ir"
	"github.com/adrenoasm/a2xx/ir/swizzle"
)

// aluSrc holds one resolved ALU source operand, or the zero value when the
// operand is absent (src3 on a non-MULADDv, non-3-src instruction).
type aluSrc struct {
	present bool
	reg     uint32
	swiz    uint32
	negate  bool
	abs     bool
	sel     bool // 1 for register-file operands, 0 for constants (inverted from IR's CONST flag)
}

// resolveALURegs walks instr.Regs in the order construction appended them
// and recovers (dst, src1, src2, src3, sdst) per the four operand-ordering
// cases from spec.md:
//
//	vector only, non-MULADDv:   dst, src1, src2
//	vector only, MULADDv:       dst, src3, src1, src2
//	vector+scalar, non-MULADDv: dst, src1, src2, sdst, src3
//	vector+scalar, MULADDv:     dst, src3, src1, src2, sdst
//
// In the last case the scalar half's 3rd source is the same register object
// as the vector half's src3 (the two are required to agree), so it is not
// stored a second time.
func resolveALURegs(instr *ir.Instruction) (dst, src1, src2, src3, sdst *ir.Register, err error) {
	regs := instr.Regs
	i := 0
	next := func() (*ir.Register, error) {
		if i >= len(regs) {
			return nil, fmt.Errorf("assemble: ALU instruction is missing a register operand")
		}
		r := regs[i]
		i++
		return r, nil
	}

	if dst, err = next(); err != nil {
		return
	}
	if instr.MulAddv {
		if src3, err = next(); err != nil {
			return
		}
	}
	if src1, err = next(); err != nil {
		return
	}
	if src2, err = next(); err != nil {
		return
	}
	if instr.HasScalar {
		if sdst, err = next(); err != nil {
			return
		}
		if src3 == nil {
			if src3, err = next(); err != nil {
				return
			}
		}
	}
	return dst, src1, src2, src3, sdst, nil
}

func resolveSrc(reg *ir.Register) (aluSrc, error) {
	if reg == nil {
		return aluSrc{present: false, sel: true}, nil
	}
	swiz, err := swizzle.ALUSource(reg.Swizzle)
	if err != nil {
		return aluSrc{}, err
	}
	return aluSrc{
		present: true,
		reg:     reg.Num & ir.RegMask,
		swiz:    swiz,
		negate:  reg.Flags&ir.FlagNegate != 0,
		abs:     reg.Flags&ir.FlagAbs != 0,
		sel:     reg.Flags&ir.FlagConst == 0,
	}, nil
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// emitALU packs an ALU instruction's vector half, optional scalar half, and
// up to 3 source operands into a dense 3-word record. spec.md does not
// mandate exact bit offsets for this record (unlike CF and FETCH); the
// layout below is this implementation's own, chosen to hold every field it
// names with no field split across a word boundary.
//
//	word0: [0:6) vector_dest   [6] export_data      [7:11) vector_write_mask
//	       [11:16) vector_opc  [16:22) scalar_dest   [22:26) scalar_write_mask
//	       [26:32) scalar_opc
//	word1: [0:6) src1_reg  [6:14) src1_swiz  [14] src1_negate  [15] src1_abs
//	       [16] src1_sel   [17:23) src2_reg  [23:31) src2_swiz  [31] reserved
//	word2: [0] src2_negate [1] src2_abs [2] src2_sel
//	       [3:9) src3_reg  [9:17) src3_swiz  [17] src3_negate  [18] src3_abs
//	       [19] src3_sel   [20:32) reserved
func emitALU(instr *ir.Instruction, words []uint32, info *Info) error {
	dst, src1, src2, src3, sdst, err := resolveALURegs(instr)
	if err != nil {
		return err
	}

	updateStats(dst, info, true)
	updateStats(src1, info, false)
	updateStats(src2, info, false)
	if sdst != nil {
		updateStats(sdst, info, true)
	}
	if src3 != nil {
		updateStats(src3, info, false)
	}

	if dst.Flags&^ir.FlagExport != 0 {
		return fmt.Errorf("assemble: ALU destination register may only carry the EXPORT flag")
	}
	if dst.Swizzle != "" && len(dst.Swizzle) != 4 {
		return fmt.Errorf("assemble: ALU destination swizzle %q must be exactly 4 characters", dst.Swizzle)
	}
	for name, r := range map[string]*ir.Register{"src1": src1, "src2": src2} {
		if r.Flags&ir.FlagExport != 0 {
			return fmt.Errorf("assemble: ALU %s register may not carry the EXPORT flag", name)
		}
		if r.Swizzle != "" && len(r.Swizzle) != 4 {
			return fmt.Errorf("assemble: ALU %s swizzle %q must be exactly 4 characters", name, r.Swizzle)
		}
	}
	if sdst != nil && sdst.Flags != dst.Flags {
		return fmt.Errorf("assemble: ALU scalar destination flags %#x must equal vector destination flags %#x", sdst.Flags, dst.Flags)
	}

	vectorMask, err := swizzle.ALUDestWriteMask(dst.Swizzle)
	if err != nil {
		return err
	}
	s1, err := resolveSrc(src1)
	if err != nil {
		return err
	}
	s2, err := resolveSrc(src2)
	if err != nil {
		return err
	}
	s3, err := resolveSrc(src3)
	if err != nil {
		return err
	}

	var scalarDest, scalarMask, scalarOpc uint32
	if instr.HasScalar {
		scalarDest = sdst.Num & ir.RegMask
		scalarMask, err = swizzle.ALUDestWriteMask(sdst.Swizzle)
		if err != nil {
			return err
		}
		scalarOpc = uint32(instr.ScalarOp)
	} else {
		// Matches the reference assembler: scalar opcode defaults to MAXs
		// when the scalar half is unused.
		scalarOpc = uint32(ir.MAXs)
	}

	word0 := (dst.Num & ir.RegMask) |
		boolBit(dst.Flags&ir.FlagExport != 0)<<6 |
		(vectorMask&0xF)<<7 |
		(uint32(instr.VectorOp)&0x1F)<<11 |
		(scalarDest&ir.RegMask)<<16 |
		(scalarMask&0xF)<<22 |
		(scalarOpc&0x3F)<<26

	word1 := (s1.reg & ir.RegMask) |
		(s1.swiz&0xFF)<<6 |
		boolBit(s1.negate)<<14 |
		boolBit(s1.abs)<<15 |
		boolBit(s1.sel)<<16 |
		(s2.reg&ir.RegMask)<<17 |
		(s2.swiz&0xFF)<<23

	word2 := boolBit(s2.negate) |
		boolBit(s2.abs)<<1 |
		boolBit(s2.sel)<<2 |
		(s3.reg&ir.RegMask)<<3 |
		(s3.swiz&0xFF)<<9 |
		boolBit(s3.negate)<<17 |
		boolBit(s3.abs)<<18 |
		boolBit(s3.sel)<<19

	words[0], words[1], words[2] = word0, word1, word2
	return nil
}
