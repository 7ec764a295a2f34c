package gui

import (
	"strings"
	"testing"

	"github.com/adrenoasm/a2xx/ir"
)

func TestFormatRegisterPlain(t *testing.T) {
	r := &ir.Register{Num: 0, Swizzle: "xyzw"}
	if got := formatRegister(r); got != "R0.xyzw" {
		t.Errorf("expected R0.xyzw, got %q", got)
	}
}

func TestFormatRegisterWithModifiers(t *testing.T) {
	r := &ir.Register{Num: 2, Swizzle: "xyz_", Flags: ir.FlagConst | ir.FlagExport}
	got := formatRegister(r)
	if !strings.Contains(got, "R2.xyz_") || !strings.Contains(got, "c") || !strings.Contains(got, "e") {
		t.Errorf("unexpected formatting: %q", got)
	}
}

func TestFormatInstructionFetch(t *testing.T) {
	shader := ir.NewShader(ir.DefaultLimits())
	cf, err := shader.AddCF(ir.CFExecEnd)
	if err != nil {
		t.Fatal(err)
	}
	instr, err := cf.AddFetch(shader.MaxInstructionsPerClause(), ir.FetchSample, 1, false, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	out := formatInstruction(0, instr)
	if !strings.Contains(out, "FETCH") {
		t.Errorf("expected FETCH in output, got %q", out)
	}
}

func TestFormatInstructionALUWithScalar(t *testing.T) {
	shader := ir.NewShader(ir.DefaultLimits())
	cf, err := shader.AddCF(ir.CFExec)
	if err != nil {
		t.Fatal(err)
	}
	instr, err := cf.AddALU(shader.MaxInstructionsPerClause(), ir.MULADDv, true, ir.ADDs)
	if err != nil {
		t.Fatal(err)
	}
	out := formatInstruction(0, instr)
	if !strings.Contains(out, "MULADDv") || !strings.Contains(out, "ADDs") {
		t.Errorf("expected MULADDv / ADDs in output, got %q", out)
	}
}
