// Package ir holds the data model for an A2xx shader: the root Shader
// aggregate, its declarative Attribute/Constant/Sampler/Uniform/Varying
// lists, its ordered sequence of ControlFlow clauses, and the ALU/FETCH
// Instructions and Register operands a clause carries. It is the in-memory
// form a front-end builds and the assemble package consumes; nothing in
// this package reads or writes machine words.
package ir

import (
	"fmt"

	"github.com/adrenoasm/a2xx/internal/arena"
)

// Attribute is a declarative (name, starting register, register count)
// triple consumed by a front-end's register mapping; the emitter never
// reads it.
type Attribute struct {
	Name  string
	Reg   int
	Count int
}

// Varying has the same shape as Attribute but names an interpolated input.
type Varying struct {
	Name  string
	Reg   int
	Count int
}

// Constant is a (starting constant index, four 32-bit floats) literal.
type Constant struct {
	Index  int
	Values [4]float32
}

// Sampler is a (index, name) texture sampler declaration.
type Sampler struct {
	Index int
	Name  string
}

// Uniform is a (starting constant index, count, name) declaration.
type Uniform struct {
	Index int
	Count int
	Name  string
}

// Shader is the root aggregate: an arena holding every duplicated name and
// swizzle string, and the ordered, capacity-bounded containers a front-end
// populates through the construction operations below. Construction is
// append-only; nothing is ever removed or reordered. The node structs are
// ordinary Go allocations owned through these containers, so dropping the
// last reference to a Shader releases the arena and its nodes together.
type Shader struct {
	limits Limits
	arena  *arena.Arena

	Attributes []*Attribute
	Constants  []*Constant
	Samplers   []*Sampler
	Uniforms   []*Uniform
	Varyings   []*Varying
	CFs        []*ControlFlow
}

// NewShader allocates a shader with the given capacity limits, including its
// backing arena.
func NewShader(limits Limits) *Shader {
	if limits.ArenaBytes <= 0 {
		limits.ArenaBytes = DefaultLimits().ArenaBytes
	}
	return &Shader{
		limits:     limits,
		arena:      arena.New(limits.ArenaBytes),
		Attributes: make([]*Attribute, 0, limits.MaxAttributes),
		Constants:  make([]*Constant, 0, limits.MaxConstants),
		Samplers:   make([]*Sampler, 0, limits.MaxSamplers),
		Uniforms:   make([]*Uniform, 0, limits.MaxUniforms),
		Varyings:   make([]*Varying, 0, limits.MaxVaryings),
		CFs:        make([]*ControlFlow, 0, limits.MaxClauses),
	}
}

// Limits returns the capacity limits this shader was constructed with.
func (s *Shader) Limits() Limits { return s.limits }

// AddAttribute appends a new attribute declaration.
func (s *Shader) AddAttribute(name string, reg, count int) (*Attribute, error) {
	if len(s.Attributes) >= s.limits.MaxAttributes {
		return nil, fmt.Errorf("ir: shader already has the maximum %d attributes", s.limits.MaxAttributes)
	}
	dup, err := s.arena.Strdup(name)
	if err != nil {
		return nil, err
	}
	a := &Attribute{Name: dup, Reg: reg, Count: count}
	s.Attributes = append(s.Attributes, a)
	return a, nil
}

// AddVarying appends a new varying declaration.
func (s *Shader) AddVarying(name string, reg, count int) (*Varying, error) {
	if len(s.Varyings) >= s.limits.MaxVaryings {
		return nil, fmt.Errorf("ir: shader already has the maximum %d varyings", s.limits.MaxVaryings)
	}
	dup, err := s.arena.Strdup(name)
	if err != nil {
		return nil, err
	}
	v := &Varying{Name: dup, Reg: reg, Count: count}
	s.Varyings = append(s.Varyings, v)
	return v, nil
}

// AddConstant appends a new literal constant.
func (s *Shader) AddConstant(index int, values [4]float32) (*Constant, error) {
	if len(s.Constants) >= s.limits.MaxConstants {
		return nil, fmt.Errorf("ir: shader already has the maximum %d constants", s.limits.MaxConstants)
	}
	c := &Constant{Index: index, Values: values}
	s.Constants = append(s.Constants, c)
	return c, nil
}

// AddSampler appends a new sampler declaration.
func (s *Shader) AddSampler(index int, name string) (*Sampler, error) {
	if len(s.Samplers) >= s.limits.MaxSamplers {
		return nil, fmt.Errorf("ir: shader already has the maximum %d samplers", s.limits.MaxSamplers)
	}
	dup, err := s.arena.Strdup(name)
	if err != nil {
		return nil, err
	}
	sm := &Sampler{Index: index, Name: dup}
	s.Samplers = append(s.Samplers, sm)
	return sm, nil
}

// AddUniform appends a new uniform declaration.
func (s *Shader) AddUniform(index, count int, name string) (*Uniform, error) {
	if len(s.Uniforms) >= s.limits.MaxUniforms {
		return nil, fmt.Errorf("ir: shader already has the maximum %d uniforms", s.limits.MaxUniforms)
	}
	dup, err := s.arena.Strdup(name)
	if err != nil {
		return nil, err
	}
	u := &Uniform{Index: index, Count: count, Name: dup}
	s.Uniforms = append(s.Uniforms, u)
	return u, nil
}

// AddCF appends a new control-flow clause of the given kind.
func (s *Shader) AddCF(kind CFKind) (*ControlFlow, error) {
	if len(s.CFs) >= s.limits.MaxClauses {
		return nil, fmt.Errorf("ir: shader already has the maximum %d CF clauses", s.limits.MaxClauses)
	}
	cf := newControlFlow(kind, s.limits.MaxInstructionsPerClause)
	s.CFs = append(s.CFs, cf)
	return cf, nil
}

// AddRegister appends a register operand to instr, duplicating swizzle into
// the shader's arena.
func (s *Shader) AddRegister(instr *Instruction, num uint32, swizzle string, flags RegFlag) (*Register, error) {
	return instr.AddRegister(s.arena, num, swizzle, flags)
}

// MaxInstructionsPerClause returns the configured per-clause instruction
// ceiling, for callers building EXEC clauses directly through ControlFlow.
func (s *Shader) MaxInstructionsPerClause() int {
	return s.limits.MaxInstructionsPerClause
}

// ArenaUsage reports bytes used / total capacity of the shader's arena, for
// diagnostics.
func (s *Shader) ArenaUsage() (used, cap int) {
	return s.arena.Used(), s.arena.Cap()
}
