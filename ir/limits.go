package ir

// Limits bounds the fixed-capacity containers every Shader is built from.
// The defaults mirror spec.md's "typically <=64" guidance; a front-end that
// needs more attaches a larger Limits at construction time.
type Limits struct {
	MaxAttributes            int
	MaxConstants             int
	MaxSamplers              int
	MaxUniforms              int
	MaxVaryings              int
	MaxClauses               int
	MaxInstructionsPerClause int
	MaxOperandsPerInstruction int
	ArenaBytes               int
}

// DefaultLimits returns the reference capacities used throughout spec.md.
func DefaultLimits() Limits {
	return Limits{
		MaxAttributes:             64,
		MaxConstants:              64,
		MaxSamplers:               64,
		MaxUniforms:               64,
		MaxVaryings:               64,
		MaxClauses:                128,
		MaxInstructionsPerClause:  6,
		MaxOperandsPerInstruction: 5,
		ArenaBytes:                1 << 16,
	}
}
