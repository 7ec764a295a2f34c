package assemble

import (
	"fmt"

	"github.com/adrenoasm/a2xx/ir"
)

func cfOpcode(kind ir.CFKind) uint32 {
	switch kind {
	case ir.CFNop:
		return cfOpNOP
	case ir.CFExec:
		return cfOpEXEC
	case ir.CFExecEnd:
		return cfOpEXECEND
	case ir.CFAlloc:
		return cfOpALLOC
	default:
		return cfOpNOP
	}
}

func cfAllocType(cf *ir.ControlFlow) uint32 {
	if cf.Kind != ir.CFAlloc {
		return 0
	}
	if cf.AllocKind == ir.AllocCoord {
		return allocTypeCoord
	}
	return allocTypeOther
}

func cfAddrSize(cf *ir.ControlFlow) uint32 {
	if cf.IsExec() {
		return cf.Addr
	}
	if cf.Kind == ir.CFAlloc {
		return cf.AllocSize
	}
	return 0
}

func cfCount(cf *ir.ControlFlow) uint32 {
	if cf.IsExec() {
		return cf.Count
	}
	return 0
}

func cfSequence(cf *ir.ControlFlow) uint32 {
	if cf.IsExec() {
		return cf.Sequence
	}
	return 0
}

// CF field widths: 12-bit address/size, 4-bit count, 16-bit sequence.
const (
	addrSizeMask = 0xFFF
	cntMask      = 0xF
	seqMask      = 0xFFFF
)

func checkField(name string, v, mask uint32) error {
	if v&^mask != 0 {
		return fmt.Errorf("assemble: %s value %#x exceeds mask %#x", name, v, mask)
	}
	return nil
}

// emitCFPair packs two consecutive clauses into 3 machine words. The layout
// is asymmetric by design: cf1 occupies word[0] and the low half of word[1];
// cf2 occupies the high half of word[1] and word[2].
func emitCFPair(cf1, cf2 *ir.ControlFlow, words []uint32) error {
	addr1, addr2 := cfAddrSize(cf1), cfAddrSize(cf2)
	count1, count2 := cfCount(cf1), cfCount(cf2)
	seq1, seq2 := cfSequence(cf1), cfSequence(cf2)
	alloc1, alloc2 := cfAllocType(cf1), cfAllocType(cf2)
	op1, op2 := cfOpcode(cf1.Kind), cfOpcode(cf2.Kind)

	for _, f := range []struct {
		name string
		v    uint32
		mask uint32
	}{
		{"cf1 addr/size", addr1, addrSizeMask},
		{"cf2 addr/size", addr2, addrSizeMask},
		{"cf1 count", count1, cntMask},
		{"cf2 count", count2, cntMask},
		{"cf1 sequence", seq1, seqMask},
		{"cf2 sequence", seq2, seqMask},
	} {
		if err := checkField(f.name, f.v, f.mask); err != nil {
			return err
		}
	}

	words[0] = (addr1 & addrSizeMask) | (count1&0xF)<<12 | (seq1&0xFFFF)<<16
	words[1] = (alloc1&0xF)<<8 | (op1&0xF)<<12 | (addr2&addrSizeMask)<<16 | (count2&0xF)<<28
	words[2] = (seq2 & 0xFFFF) | (alloc2&0xF)<<24 | (op2&0xF)<<28

	return nil
}
