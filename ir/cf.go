package ir

import "fmt"

// CFKind tags the payload carried by a ControlFlow clause.
type CFKind int

const (
	CFNop CFKind = iota
	CFExec
	CFExecEnd
	CFAlloc
)

func (k CFKind) String() string {
	switch k {
	case CFNop:
		return "NOP"
	case CFExec:
		return "EXEC"
	case CFExecEnd:
		return "EXEC_END"
	case CFAlloc:
		return "ALLOC"
	default:
		return "?"
	}
}

// AllocType distinguishes the two ALLOC clause purposes.
type AllocType int

const (
	AllocCoord AllocType = iota
	AllocOther
)

func (t AllocType) String() string {
	if t == AllocCoord {
		return "COORD"
	}
	return "OTHER"
}

// cntMask is the 4-bit count field's ceiling; instrs_count must fit in it.
const cntMask = 0xF

// addrSizeMask bounds the 12-bit address/size fields.
const addrSizeMask = 0xFFF

// seqMask bounds the 16-bit sequence field.
const seqMask = 0xFFFF

// ControlFlow is a tagged union over {NOP, EXEC, EXEC_END, ALLOC}. EXEC and
// EXEC_END clauses carry an ordered, bounded instruction sequence plus
// resolver-computed address/count/sequence; ALLOC clauses carry a size and
// allocation type; NOP carries nothing.
type ControlFlow struct {
	Kind CFKind

	// EXEC / EXEC_END payload.
	Instrs   []*Instruction
	Addr     uint32
	Count    uint32
	Sequence uint32

	// ALLOC payload.
	AllocSize uint32
	AllocKind AllocType
}

func newControlFlow(kind CFKind, maxInstrs int) *ControlFlow {
	cf := &ControlFlow{Kind: kind}
	if kind == CFExec || kind == CFExecEnd {
		cf.Instrs = make([]*Instruction, 0, maxInstrs)
	}
	return cf
}

// IsExec reports whether the clause is EXEC or EXEC_END.
func (cf *ControlFlow) IsExec() bool {
	return cf.Kind == CFExec || cf.Kind == CFExecEnd
}

// AddFetch appends a FETCH instruction to an EXEC/EXEC_END clause.
func (cf *ControlFlow) AddFetch(maxInstrs int, op FetchOp, constIndex uint32, signed bool, format, stride uint32) (*Instruction, error) {
	if !cf.IsExec() {
		return nil, fmt.Errorf("ir: cannot add instructions to a %s clause", cf.Kind)
	}
	if len(cf.Instrs) >= maxInstrs {
		return nil, fmt.Errorf("ir: EXEC clause already has the maximum %d instructions", maxInstrs)
	}
	instr, err := newFetchInstruction(op, constIndex, signed, format, stride)
	if err != nil {
		return nil, err
	}
	cf.Instrs = append(cf.Instrs, instr)
	return instr, nil
}

// AddALU appends an ALU instruction to an EXEC/EXEC_END clause.
func (cf *ControlFlow) AddALU(maxInstrs int, vector VectorOp, hasScalar bool, scalar ScalarOp) (*Instruction, error) {
	if !cf.IsExec() {
		return nil, fmt.Errorf("ir: cannot add instructions to a %s clause", cf.Kind)
	}
	if len(cf.Instrs) >= maxInstrs {
		return nil, fmt.Errorf("ir: EXEC clause already has the maximum %d instructions", maxInstrs)
	}
	instr := newALUInstruction(vector, hasScalar, scalar)
	cf.Instrs = append(cf.Instrs, instr)
	return instr, nil
}

// SetAlloc populates an ALLOC clause's payload. size must fit in 12 bits.
func (cf *ControlFlow) SetAlloc(size uint32, t AllocType) error {
	if cf.Kind != CFAlloc {
		return fmt.Errorf("ir: SetAlloc called on a %s clause", cf.Kind)
	}
	if size > addrSizeMask {
		return fmt.Errorf("ir: ALLOC size %#x exceeds %#x", size, addrSizeMask)
	}
	cf.AllocSize = size
	cf.AllocKind = t
	return nil
}
