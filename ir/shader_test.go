package ir_test

import (
	"testing"

	"github.com/adrenoasm/a2xx/ir"
)

func smallLimits() ir.Limits {
	l := ir.DefaultLimits()
	l.MaxAttributes = 2
	l.MaxClauses = 4
	l.MaxInstructionsPerClause = 6
	l.ArenaBytes = 4096
	return l
}

func TestAddAttributeAppendsAndDuplicatesName(t *testing.T) {
	s := ir.NewShader(smallLimits())
	a, err := s.AddAttribute("position", 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "position" || a.Reg != 0 || a.Count != 4 {
		t.Errorf("got %+v", a)
	}
	if len(s.Attributes) != 1 {
		t.Errorf("len(Attributes) = %d, want 1", len(s.Attributes))
	}
}

func TestAddAttributeCapacityOverflowIsError(t *testing.T) {
	s := ir.NewShader(smallLimits())
	for i := 0; i < 2; i++ {
		if _, err := s.AddAttribute("a", i, 1); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.AddAttribute("overflow", 0, 1); err == nil {
		t.Fatal("expected capacity overflow error")
	}
}

func TestAddCFAppendsInOrder(t *testing.T) {
	s := ir.NewShader(smallLimits())
	cf1, _ := s.AddCF(ir.CFNop)
	cf2, _ := s.AddCF(ir.CFExec)
	if len(s.CFs) != 2 || s.CFs[0] != cf1 || s.CFs[1] != cf2 {
		t.Fatalf("CFs not appended in order: %+v", s.CFs)
	}
}

func TestExecInstructionCapacity(t *testing.T) {
	l := smallLimits()
	l.MaxInstructionsPerClause = 6
	s := ir.NewShader(l)
	cf, _ := s.AddCF(ir.CFExec)

	for i := 0; i < 6; i++ {
		if _, err := cf.AddALU(s.MaxInstructionsPerClause(), ir.ADDv, false, 0); err != nil {
			t.Fatalf("instruction %d: %v", i, err)
		}
	}
	if _, err := cf.AddALU(s.MaxInstructionsPerClause(), ir.ADDv, false, 0); err == nil {
		t.Fatal("expected capacity overflow past 6 instructions")
	}
}

func TestAddInstructionToNonExecClauseFails(t *testing.T) {
	s := ir.NewShader(smallLimits())
	cf, _ := s.AddCF(ir.CFNop)
	if _, err := cf.AddALU(s.MaxInstructionsPerClause(), ir.ADDv, false, 0); err == nil {
		t.Fatal("expected error adding instructions to a NOP clause")
	}
}

func TestSetAllocBounds(t *testing.T) {
	s := ir.NewShader(smallLimits())
	cf, _ := s.AddCF(ir.CFAlloc)
	if err := cf.SetAlloc(0x1000, ir.AllocOther); err == nil {
		t.Fatal("expected size > 12 bits to be rejected")
	}
	if err := cf.SetAlloc(4, ir.AllocCoord); err != nil {
		t.Fatal(err)
	}
	if cf.AllocSize != 4 || cf.AllocKind != ir.AllocCoord {
		t.Errorf("got size=%d kind=%v", cf.AllocSize, cf.AllocKind)
	}
}

func TestRegisterNumberBounds(t *testing.T) {
	s := ir.NewShader(smallLimits())
	cf, _ := s.AddCF(ir.CFExec)
	instr, _ := cf.AddALU(s.MaxInstructionsPerClause(), ir.ADDv, false, 0)

	if _, err := s.AddRegister(instr, 0x40, "", 0); err == nil {
		t.Fatal("expected register number 0x40 (> 0x3F) to be rejected")
	}
	if _, err := s.AddRegister(instr, 0x3F, "", 0); err != nil {
		t.Fatal(err)
	}
}

func TestInstructionOperandCapacity(t *testing.T) {
	s := ir.NewShader(smallLimits())
	cf, _ := s.AddCF(ir.CFExec)
	instr, _ := cf.AddALU(s.MaxInstructionsPerClause(), ir.MULADDv, true, ir.ADDs)

	for i := 0; i < 5; i++ {
		if _, err := s.AddRegister(instr, uint32(i), "", 0); err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
	}
	if _, err := s.AddRegister(instr, 0, "", 0); err == nil {
		t.Fatal("expected 6th register operand to be rejected (max 5)")
	}
}
