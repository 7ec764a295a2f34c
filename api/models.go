package api

// RegisterJSON is the wire shape of an ir.Register operand.
type RegisterJSON struct {
	Num     uint32   `json:"num"`
	Swizzle string   `json:"swizzle,omitempty"`
	Flags   []string `json:"flags,omitempty"` // "const", "export", "negate", "abs"
}

// InstructionJSON is the wire shape of an ir.Instruction. Kind selects which
// of the FETCH/ALU fields apply; the rest are ignored.
type InstructionJSON struct {
	Kind string         `json:"kind"` // "fetch" or "alu"
	Sync bool           `json:"sync,omitempty"`
	Regs []RegisterJSON `json:"regs"`

	// FETCH fields.
	FetchOp    string `json:"fetch_op,omitempty"` // "vertex" or "sample"
	ConstIndex uint32 `json:"const_index,omitempty"`
	Signed     bool   `json:"signed,omitempty"`
	Format     uint32 `json:"format,omitempty"`
	Stride     uint32 `json:"stride,omitempty"`

	// ALU fields.
	VectorOp  string `json:"vector_op,omitempty"`
	ScalarOp  string `json:"scalar_op,omitempty"`
	HasScalar bool   `json:"has_scalar,omitempty"`
}

// ClauseJSON is the wire shape of an ir.ControlFlow clause.
type ClauseJSON struct {
	Kind      string            `json:"kind"` // "nop", "exec", "exec_end", "alloc"
	Instrs    []InstructionJSON `json:"instrs,omitempty"`
	AllocSize uint32            `json:"alloc_size,omitempty"`
	AllocKind string            `json:"alloc_kind,omitempty"` // "coord" or "other"
}

// ShaderRequest is the body of POST /api/v1/shader/assemble: a shader
// expressed purely through the IR Construction API's parameters.
type ShaderRequest struct {
	Clauses []ClauseJSON `json:"clauses"`
}

// InfoJSON is the wire shape of assemble.Info.
type InfoJSON struct {
	MaxReg      int32  `json:"max_reg"`
	MaxInputReg uint32 `json:"max_input_reg"`
	RegsWritten uint64 `json:"regs_written"`
}

// AssembleResponse is returned by both the assemble and examples endpoints.
type AssembleResponse struct {
	Words    []uint32 `json:"words"`
	Info     InfoJSON `json:"info"`
	Warnings []string `json:"warnings,omitempty"`
}

// ExamplesResponse lists the fixed demo shaders, pre-encoded.
type ExamplesResponse struct {
	Examples map[string]AssembleResponse `json:"examples"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
