// Package demo builds the fixed example shaders used by the CLI's -demo
// flag and the HTTP API's /api/v1/examples endpoint. Every shader here is
// built exclusively through the ir package's construction API — there is no
// text shader grammar anywhere in this repository — and corresponds to one
// of the end-to-end scenarios or boundary cases from the core assembler's
// testable properties.
package demo

import (
	"fmt"
	"sort"

	"github.com/adrenoasm/a2xx/ir"
)

const (
	VertexFetch    = "vertex_fetch"
	ALUPair        = "alu_pair"
	AllocExec      = "alloc_exec"
	ALUExportMasks = "alu_export_masks"
	TextureSample  = "texture_sample"
	RegisterStats  = "register_stats"
	OddClauseCount = "odd"
)

var builders = map[string]func() (*ir.Shader, error){
	VertexFetch:    buildVertexFetch,
	ALUPair:        buildALUPair,
	AllocExec:      buildAllocExec,
	ALUExportMasks: buildALUExportMasks,
	TextureSample:  buildTextureSample,
	RegisterStats:  buildRegisterStats,
	OddClauseCount: buildOddClauseCount,
}

// Names lists the demo shaders available to Build, in a stable order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named demo shader. Unknown names are a fatal
// precondition violation, matching the rest of the construction API.
func Build(name string) (*ir.Shader, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("demo: unknown demo %q (available: %v)", name, Names())
	}
	return b()
}

// buildVertexFetch: a single EXEC_END clause with one FETCH VERTEX
// instruction (dst R0.xyzw, src R1.x, const 0, signed, format 0x2,
// stride 12).
func buildVertexFetch() (*ir.Shader, error) {
	s := ir.NewShader(ir.DefaultLimits())
	cf, err := s.AddCF(ir.CFExecEnd)
	if err != nil {
		return nil, err
	}
	instr, err := cf.AddFetch(s.MaxInstructionsPerClause(), ir.FetchVertex, 0, true, 0x2, 12)
	if err != nil {
		return nil, err
	}
	if _, err := s.AddRegister(instr, 0, "xyzw", 0); err != nil {
		return nil, err
	}
	if _, err := s.AddRegister(instr, 1, "x", 0); err != nil {
		return nil, err
	}
	return s, nil
}

// buildALUPair: EXEC(R2 = R0 ADDv R1) followed by EXEC_END(R3 = R4 MULADDv
// R0, R1), exercising two-clause address/count resolution and the MULADDv
// operand-ordering case.
func buildALUPair() (*ir.Shader, error) {
	s := ir.NewShader(ir.DefaultLimits())

	cf1, err := s.AddCF(ir.CFExec)
	if err != nil {
		return nil, err
	}
	add, err := cf1.AddALU(s.MaxInstructionsPerClause(), ir.ADDv, false, 0)
	if err != nil {
		return nil, err
	}
	for _, num := range []uint32{2, 0, 1} {
		if _, err := s.AddRegister(add, num, "xyzw", 0); err != nil {
			return nil, err
		}
	}

	cf2, err := s.AddCF(ir.CFExecEnd)
	if err != nil {
		return nil, err
	}
	mulAdd, err := cf2.AddALU(s.MaxInstructionsPerClause(), ir.MULADDv, false, 0)
	if err != nil {
		return nil, err
	}
	for _, num := range []uint32{3, 4, 0, 1} {
		if _, err := s.AddRegister(mulAdd, num, "xyzw", 0); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// buildAllocExec: an ALLOC(COORD, size 4) clause paired with an EXEC
// clause of two ALU instructions.
func buildAllocExec() (*ir.Shader, error) {
	s := ir.NewShader(ir.DefaultLimits())

	allocCF, err := s.AddCF(ir.CFAlloc)
	if err != nil {
		return nil, err
	}
	if err := allocCF.SetAlloc(4, ir.AllocCoord); err != nil {
		return nil, err
	}

	execCF, err := s.AddCF(ir.CFExec)
	if err != nil {
		return nil, err
	}
	for _, op := range []ir.VectorOp{ir.ADDv, ir.MULv} {
		instr, err := execCF.AddALU(s.MaxInstructionsPerClause(), op, false, 0)
		if err != nil {
			return nil, err
		}
		for _, num := range []uint32{0, 1, 2} {
			if _, err := s.AddRegister(instr, num, "xyzw", 0); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

// buildALUExportMasks: a vector+scalar ALU instruction writing an export
// register, with differing vector/scalar write masks (xyzw vs ___w).
func buildALUExportMasks() (*ir.Shader, error) {
	s := ir.NewShader(ir.DefaultLimits())
	cf, err := s.AddCF(ir.CFExecEnd)
	if err != nil {
		return nil, err
	}
	instr, err := cf.AddALU(s.MaxInstructionsPerClause(), ir.ADDv, true, ir.MULs)
	if err != nil {
		return nil, err
	}

	regs := []struct {
		num     uint32
		swizzle string
		flags   ir.RegFlag
	}{
		{0, "xyzw", ir.FlagExport}, // vector dest
		{1, "xyzw", 0},             // src1
		{2, "xyzw", 0},             // src2
		{0, "___w", ir.FlagExport}, // scalar dest
		{3, "xyzw", 0},             // src3
	}
	for _, r := range regs {
		if _, err := s.AddRegister(instr, r.num, r.swizzle, r.flags); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// buildTextureSample: a texture SAMPLE FETCH with an absent destination
// swizzle (defaults to identity) and a 3-channel source swizzle.
func buildTextureSample() (*ir.Shader, error) {
	s := ir.NewShader(ir.DefaultLimits())
	cf, err := s.AddCF(ir.CFExecEnd)
	if err != nil {
		return nil, err
	}
	instr, err := cf.AddFetch(s.MaxInstructionsPerClause(), ir.FetchSample, 0, false, 0, 0)
	if err != nil {
		return nil, err
	}
	if _, err := s.AddRegister(instr, 0, "", 0); err != nil {
		return nil, err
	}
	if _, err := s.AddRegister(instr, 1, "xyz", 0); err != nil {
		return nil, err
	}
	return s, nil
}

// buildRegisterStats: two ALU instructions exercising the read-before-write
// heuristic (R0 read before any write, R2 read only after being written)
// and CONST-flag exclusion from both max_reg and regs_written.
func buildRegisterStats() (*ir.Shader, error) {
	s := ir.NewShader(ir.DefaultLimits())
	cf, err := s.AddCF(ir.CFExecEnd)
	if err != nil {
		return nil, err
	}

	i1, err := cf.AddALU(s.MaxInstructionsPerClause(), ir.ADDv, false, 0)
	if err != nil {
		return nil, err
	}
	if err := addRegs(s, i1, []reg{{2, "xyzw", 0}, {0, "xyzw", 0}, {3, "xyzw", ir.FlagConst}}); err != nil {
		return nil, err
	}

	i2, err := cf.AddALU(s.MaxInstructionsPerClause(), ir.ADDv, false, 0)
	if err != nil {
		return nil, err
	}
	if err := addRegs(s, i2, []reg{{5, "xyzw", 0}, {2, "xyzw", 0}, {3, "xyzw", ir.FlagConst}}); err != nil {
		return nil, err
	}

	return s, nil
}

// buildOddClauseCount: a single EXEC_END clause, deliberately left as the
// shader's only clause so Assemble must pad it with a trailing NOP to reach
// an even clause count before CF pair emission.
func buildOddClauseCount() (*ir.Shader, error) {
	s := ir.NewShader(ir.DefaultLimits())
	cf, err := s.AddCF(ir.CFExecEnd)
	if err != nil {
		return nil, err
	}
	instr, err := cf.AddALU(s.MaxInstructionsPerClause(), ir.ADDv, false, 0)
	if err != nil {
		return nil, err
	}
	return s, addRegs(s, instr, []reg{{0, "xyzw", 0}, {1, "xyzw", 0}, {2, "xyzw", 0}})
}

type reg struct {
	num     uint32
	swizzle string
	flags   ir.RegFlag
}

func addRegs(s *ir.Shader, instr *ir.Instruction, regs []reg) error {
	for _, r := range regs {
		if _, err := s.AddRegister(instr, r.num, r.swizzle, r.flags); err != nil {
			return err
		}
	}
	return nil
}
