package assemble

import "github.com/adrenoasm/a2xx/ir"

// Info carries the shader-level statistics the driver needs to program
// thread-dispatch state: the highest register number ever referenced, the
// highest register number ever read before being written (the read-before
// -write heuristic for identifying shader inputs), and a bitmap of every
// register ever written.
type Info struct {
	MaxReg      int32
	MaxInputReg uint32
	RegsWritten uint64
}

func newInfo() Info {
	return Info{MaxReg: -1}
}

// updateStats folds one register operand into info. Registers flagged
// CONST or EXPORT never touch shader statistics: constants aren't part of
// the register file's thread-dispatch footprint, and export writes don't
// consume a general-purpose register slot.
func updateStats(reg *ir.Register, info *Info, dest bool) {
	if reg == nil {
		return
	}
	if reg.Flags&(ir.FlagConst|ir.FlagExport) != 0 {
		return
	}

	if int32(reg.Num) > info.MaxReg {
		info.MaxReg = int32(reg.Num)
	}

	if dest {
		info.RegsWritten |= 1 << reg.Num
	} else if info.RegsWritten&(1<<reg.Num) == 0 {
		if reg.Num > info.MaxInputReg {
			info.MaxInputReg = reg.Num
		}
	}
}
