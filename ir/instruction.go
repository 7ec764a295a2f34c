package ir

import "fmt"

// InstrKind tags the payload carried by an Instruction.
type InstrKind int

const (
	InstrFetch InstrKind = iota
	InstrALU
)

func (k InstrKind) String() string {
	switch k {
	case InstrFetch:
		return "FETCH"
	case InstrALU:
		return "ALU"
	default:
		return "?"
	}
}

// FetchOp selects the FETCH instruction's source.
type FetchOp uint32

const (
	FetchVertex FetchOp = 0x00
	FetchSample FetchOp = 0x01
)

// Vector ALU opcodes, reproduced from the published A2xx ISA tables.
const (
	ADDv VectorOp = iota
	MULv
	MAXv
	MINv
	SETEv
	SETGTv
	SETGEv
	SETNEv
	FRACv
	TRUNCv
	FLOORv
	MULADDv
	CNDEv
	CNDGTEv
	CNDGTv
	DOT4v
	DOT3v
	DOT2ADDv
	CUBEv
	MAX4v
	PredSetEPushv
	PredSetNEPushv
	PredSetGTPushv
	PredSetGTEPushv
	KillEv
	KillGTv
	KillGTEv
	KillNEv
	DSTv
	MOVAv
)

// Scalar ALU opcodes, reproduced from the published A2xx ISA tables.
const (
	ADDs ScalarOp = iota
	AddPrevs
	MULs
	MulPrevs
	MulPrev2s
	MAXs
	MINs
	SETEs
	SETGTs
	SETGEs
	SETNEs
	FRACs
	TRUNCs
	FLOORs
	ExpIEEE
	LogClamp
	LogIEEE
	RecipClamp
	RecipFF
	RecipIEEE
	RecipSqClamp
	RecipSqFF
	RecipSqIEEE
	MOVAs
	MovaFloors
	SUBs
	SubPrevs
	PredSetEs
	PredSetNEs
	PredSetGTs
	PredSetGTEs
	PredSetInvs
	PredSetPops
	PredSetClrs
	PredSetRestores
	KillEs
	KillGTs
	KillGTEs
	KillNEs
	KillOnes
	SqrtIEEE
	MulConst0
	MulConst1
	AddConst0
	AddConst1
	SubConst0
	SubConst1
	SIN
	COS
	RetainPrev
)

// VectorOp is the vector half of an ALU instruction.
type VectorOp uint32

// ScalarOp is the optional scalar half of an ALU instruction.
type ScalarOp uint32

var vectorOpNames = [...]string{
	"ADDv", "MULv", "MAXv", "MINv", "SETEv", "SETGTv", "SETGEv", "SETNEv",
	"FRACv", "TRUNCv", "FLOORv", "MULADDv", "CNDEv", "CNDGTEv", "CNDGTv",
	"DOT4v", "DOT3v", "DOT2ADDv", "CUBEv", "MAX4v", "PredSetEPushv",
	"PredSetNEPushv", "PredSetGTPushv", "PredSetGTEPushv", "KillEv",
	"KillGTv", "KillGTEv", "KillNEv", "DSTv", "MOVAv",
}

func (v VectorOp) String() string {
	if int(v) < len(vectorOpNames) {
		return vectorOpNames[v]
	}
	return "?"
}

var scalarOpNames = [...]string{
	"ADDs", "AddPrevs", "MULs", "MulPrevs", "MulPrev2s", "MAXs", "MINs",
	"SETEs", "SETGTs", "SETGEs", "SETNEs", "FRACs", "TRUNCs", "FLOORs",
	"ExpIEEE", "LogClamp", "LogIEEE", "RecipClamp", "RecipFF", "RecipIEEE",
	"RecipSqClamp", "RecipSqFF", "RecipSqIEEE", "MOVAs", "MovaFloors",
	"SUBs", "SubPrevs", "PredSetEs", "PredSetNEs", "PredSetGTs",
	"PredSetGTEs", "PredSetInvs", "PredSetPops", "PredSetClrs",
	"PredSetRestores", "KillEs", "KillGTs", "KillGTEs", "KillNEs",
	"KillOnes", "SqrtIEEE", "MulConst0", "MulConst1", "AddConst0",
	"AddConst1", "SubConst0", "SubConst1", "SIN", "COS", "RetainPrev",
}

func (s ScalarOp) String() string {
	if int(s) < len(scalarOpNames) {
		return scalarOpNames[s]
	}
	return "?"
}

// Instruction is a tagged union over FETCH and ALU payloads, holding up to 5
// Register operands (the maximum needed by an ALU with both a scalar half
// and a third vector source).
type Instruction struct {
	Kind InstrKind
	Sync bool
	Regs []*Register

	// FETCH payload.
	FetchOp    FetchOp
	ConstIndex uint32
	Signed     bool
	Format     uint32
	Stride     uint32

	// ALU payload.
	VectorOp   VectorOp
	ScalarOp   ScalarOp
	HasScalar  bool
	MulAddv    bool // true when VectorOp == MULADDv, disambiguates operand ordering
}

// maxOperands is the hard ceiling from spec.md: ALU with scalar-and-3-src.
const maxOperands = 5

func newFetchInstruction(op FetchOp, constIndex uint32, signed bool, format, stride uint32) (*Instruction, error) {
	if constIndex > 0xF {
		return nil, fmt.Errorf("ir: FETCH const index %#x exceeds 0xF", constIndex)
	}
	if format > 0x3F {
		return nil, fmt.Errorf("ir: FETCH format %#x exceeds 0x3F", format)
	}
	if stride > 0xFF {
		return nil, fmt.Errorf("ir: FETCH stride %#x exceeds 0xFF", stride)
	}
	return &Instruction{
		Kind:       InstrFetch,
		FetchOp:    op,
		ConstIndex: constIndex,
		Signed:     signed,
		Format:     format,
		Stride:     stride,
	}, nil
}

func newALUInstruction(vector VectorOp, hasScalar bool, scalar ScalarOp) *Instruction {
	return &Instruction{
		Kind:      InstrALU,
		VectorOp:  vector,
		HasScalar: hasScalar,
		ScalarOp:  scalar,
		MulAddv:   vector == MULADDv,
	}
}

// AddRegister appends a Register operand to the instruction. Capacity
// overflow (more than 5 operands) is a precondition violation.
func (i *Instruction) AddRegister(a stringDup, num uint32, swizzle string, flags RegFlag) (*Register, error) {
	if len(i.Regs) >= maxOperands {
		return nil, fmt.Errorf("ir: instruction already has the maximum %d register operands", maxOperands)
	}
	r, err := newRegister(a, num, swizzle, flags)
	if err != nil {
		return nil, err
	}
	i.Regs = append(i.Regs, r)
	return r, nil
}
