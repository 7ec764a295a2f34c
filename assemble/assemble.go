package assemble

import (
	"fmt"

	"github.com/adrenoasm/a2xx/ir"
)

// Result is everything Assemble hands back: the number of words written,
// the shader-level register statistics, and any resolver-disagreement
// warnings collected along the way.
type Result struct {
	WordsWritten int
	Info         Info
	Warnings     []string
}

// RequiredWords returns the word-buffer capacity Assemble needs for shader,
// accounting for the NOP clause Assemble appends if the clause count is
// odd. Callers that want to size a buffer ahead of time should call this
// after finishing construction.
func RequiredWords(shader *ir.Shader) int {
	cfs := len(shader.CFs)
	if cfs%2 != 0 {
		cfs++
	}
	instrs := 0
	for _, cf := range shader.CFs {
		if cf.IsExec() {
			instrs += len(cf.Instrs)
		}
	}
	return 3 * (cfs/2 + instrs)
}

// Assemble runs the Resolver, then the CF emitter over every clause pair,
// then the instruction emitters over every EXEC/EXEC_END clause's
// instructions in order, writing sequentially into words. It returns the
// number of words written; on any precondition violation it returns
// immediately with the words written so far (possibly zero) and a non-nil
// error. Resolver disagreements are non-fatal and are reported as warnings
// on a successful Result.
func Assemble(shader *ir.Shader, words []uint32) (Result, error) {
	info := newInfo()

	// We need an even number of clauses; insert a NOP if needed.
	if len(shader.CFs)%2 != 0 {
		if _, err := shader.AddCF(ir.CFNop); err != nil {
			return Result{Info: info}, fmt.Errorf("assemble: failed to pad odd clause count: %w", err)
		}
	}

	warnings := resolve(shader)

	need := RequiredWords(shader)
	if len(words) < need {
		return Result{Info: info, Warnings: warnings}, fmt.Errorf("assemble: output buffer has %d words, need %d", len(words), need)
	}

	pos := 0
	for i := 0; i < len(shader.CFs); i += 2 {
		if err := emitCFPair(shader.CFs[i], shader.CFs[i+1], words[pos:pos+3]); err != nil {
			return Result{WordsWritten: pos, Info: info, Warnings: warnings}, fmt.Errorf("assemble: CF emit failed at clause %d: %w", i, err)
		}
		pos += 3
	}

	var idx uint32
	for ci, cf := range shader.CFs {
		if !cf.IsExec() {
			continue
		}
		for _, instr := range cf.Instrs {
			var err error
			switch instr.Kind {
			case ir.InstrFetch:
				err = emitFetch(instr, idx, words[pos:pos+3], &info)
			case ir.InstrALU:
				err = emitALU(instr, words[pos:pos+3], &info)
			default:
				err = fmt.Errorf("invalid instruction kind %v", instr.Kind)
			}
			if err != nil {
				return Result{WordsWritten: pos, Info: info, Warnings: warnings}, fmt.Errorf("assemble: instruction emit failed in clause %d: %w", ci, err)
			}
			pos += 3
			idx++
		}
	}

	return Result{WordsWritten: pos, Info: info, Warnings: warnings}, nil
}
