package service_test

import (
	"testing"

	"github.com/adrenoasm/a2xx/config"
	"github.com/adrenoasm/a2xx/ir"
	"github.com/adrenoasm/a2xx/service"
)

func buildSimpleShader(t *testing.T, s *ir.Shader) {
	t.Helper()
	cf, err := s.AddCF(ir.CFExecEnd)
	if err != nil {
		t.Fatal(err)
	}
	instr, err := cf.AddALU(s.MaxInstructionsPerClause(), ir.ADDv, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, num := range []uint32{0, 1, 2} {
		if _, err := s.AddRegister(instr, num, "xyzw", 0); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNewUsesConfiguredLimits(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Limits.MaxClauses = 3
	svc := service.NewAssemblerService(cfg)

	shader, err := svc.New()
	if err != nil {
		t.Fatal(err)
	}
	if shader.Limits().MaxClauses != 3 {
		t.Errorf("MaxClauses = %d, want 3", shader.Limits().MaxClauses)
	}
}

func TestAssembleReturnsWordsAndInfo(t *testing.T) {
	svc := service.NewAssemblerService(nil)
	shader, err := svc.New()
	if err != nil {
		t.Fatal(err)
	}
	buildSimpleShader(t, shader)

	res, words, err := svc.Assemble(shader)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != res.WordsWritten {
		t.Errorf("len(words) = %d, want %d", len(words), res.WordsWritten)
	}
	if res.Info.MaxReg != 2 {
		t.Errorf("MaxReg = %d, want 2", res.Info.MaxReg)
	}
}

func TestAssembleNilShaderIsError(t *testing.T) {
	svc := service.NewAssemblerService(nil)
	if _, _, err := svc.Assemble(nil); err == nil {
		t.Fatal("expected error for nil shader")
	}
}

func TestSubscribeReceivesPhaseEvents(t *testing.T) {
	svc := service.NewAssemblerService(nil)
	events := svc.Subscribe()
	defer svc.Unsubscribe()

	shader, err := svc.New()
	if err != nil {
		t.Fatal(err)
	}
	buildSimpleShader(t, shader)

	if _, _, err := svc.Assemble(shader); err != nil {
		t.Fatal(err)
	}

	seen := make(map[service.Phase]bool)
	for i := 0; i < 4; i++ {
		ev := <-events
		seen[ev.Phase] = true
	}
	for _, want := range []service.Phase{
		service.PhaseResolved, service.PhaseCFEmitted,
		service.PhaseInstrEmitted, service.PhaseDone,
	} {
		if !seen[want] {
			t.Errorf("missing phase event %q", want)
		}
	}
}
