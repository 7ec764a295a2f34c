package assemble

import (
	"fmt"

	"github.com/adrenoasm/a2xx/ir"
)

// resolve is the assembler's first pass: it assigns clause addresses and
// computes each EXEC/EXEC_END clause's 16-bit sequence bitmap. The caller
// must have already padded shader.CFs to an even count.
//
// Starting address is cfs_count/2, since clauses are packed two per 3 CF
// words and the instruction stream begins immediately after the CF block.
// Non-EXEC clauses do not advance the address. Per spec.md this ordering
// places the earliest instruction's status in the sequence field's lowest
// bit pair, matching the hardware's consumption order, which is why the
// instructions are walked last-to-first while packing.
func resolve(shader *ir.Shader) []string {
	var warnings []string

	addr := uint32(len(shader.CFs) / 2)
	for i, cf := range shader.CFs {
		if !cf.IsExec() {
			continue
		}

		var sequence uint32
		for j := len(cf.Instrs) - 1; j >= 0; j-- {
			instr := cf.Instrs[j]
			sequence <<= 2
			if instr.Kind == ir.InstrFetch {
				sequence |= 0x1
			}
			if instr.Sync {
				sequence |= 0x2
			}
		}

		if cf.Addr != 0 && cf.Addr != addr {
			warnings = append(warnings, fmt.Sprintf("resolver: invalid addr %#x at CF %d, overwriting with %#x", cf.Addr, i, addr))
		}
		if cf.Count != 0 && cf.Count != uint32(len(cf.Instrs)) {
			warnings = append(warnings, fmt.Sprintf("resolver: invalid count %d at CF %d, overwriting with %d", cf.Count, i, len(cf.Instrs)))
		}

		cf.Addr = addr
		cf.Count = uint32(len(cf.Instrs))
		cf.Sequence = sequence

		addr += uint32(len(cf.Instrs))
	}

	return warnings
}
