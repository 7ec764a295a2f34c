package service

import (
	"fmt"
	"sync"

	"github.com/adrenoasm/a2xx/assemble"
	"github.com/adrenoasm/a2xx/config"
	"github.com/adrenoasm/a2xx/ir"
)

// AssemblerService is a thread-safe facade over shader construction and
// assembly. A single AssemblerService may be shared by multiple callers;
// each call to New returns an independent *ir.Shader that must not be
// mutated concurrently (the core assembler's concurrency model, unchanged:
// one shader instance is not safe for concurrent mutation, distinct
// instances share nothing).
type AssemblerService struct {
	cfg *config.Config

	mu     sync.Mutex
	events chan Event
}

// NewAssemblerService builds a service sized from cfg. A nil cfg is
// replaced with config.DefaultConfig().
func NewAssemblerService(cfg *config.Config) *AssemblerService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &AssemblerService{cfg: cfg}
}

// New allocates a fresh shader sized per the service's configuration.
func (s *AssemblerService) New() (*ir.Shader, error) {
	return ir.NewShader(s.cfg.ToLimits()), nil
}

// Events returns a channel of phase-transition events emitted by every call
// to Assemble while a subscriber is attached via Subscribe. Returns nil
// until Subscribe has been called at least once.
func (s *AssemblerService) Events() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events
}

// Subscribe attaches an events channel consumed by callers such as
// api.Broadcaster. Only one subscriber is supported at a time; a second
// call replaces the first.
func (s *AssemblerService) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Event, 16)
	s.events = ch
	return ch
}

// Unsubscribe detaches the events channel and closes it.
func (s *AssemblerService) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.events != nil {
		close(s.events)
		s.events = nil
	}
}

func (s *AssemblerService) emit(ev Event) {
	s.mu.Lock()
	ch := s.events
	s.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	default:
		// Slow or absent subscriber; drop rather than block assembly.
	}
}

// Assemble runs the Resolver, CF emitter, and instruction emitter passes
// over shader and returns the result together with the machine words it
// wrote. It sizes the word buffer via assemble.RequiredWords, so callers
// never need to precompute it.
//
// Phase events, one per stage, are emitted best-effort once the whole
// assembly has succeeded (none are emitted on failure); they are
// a convenience for the API's WebSocket stream and carry no information the
// returned *assemble.Result does not already have.
func (s *AssemblerService) Assemble(shader *ir.Shader) (*assemble.Result, []uint32, error) {
	if shader == nil {
		return nil, nil, fmt.Errorf("service: shader is nil")
	}

	words := make([]uint32, assemble.RequiredWords(shader))

	res, err := assemble.Assemble(shader, words)
	if err != nil {
		return nil, nil, fmt.Errorf("service: assemble failed: %w", err)
	}

	s.emit(Event{Phase: PhaseResolved, Count: len(shader.CFs)})
	s.emit(Event{Phase: PhaseCFEmitted, Count: len(shader.CFs) / 2})
	instrCount := 0
	for _, cf := range shader.CFs {
		if cf.IsExec() {
			instrCount += len(cf.Instrs)
		}
	}
	s.emit(Event{Phase: PhaseInstrEmitted, Count: instrCount})
	s.emit(Event{Phase: PhaseDone, Count: res.WordsWritten, Warnings: res.Warnings})

	return &res, words[:res.WordsWritten], nil
}
