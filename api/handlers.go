package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/adrenoasm/a2xx/assemble"
	"github.com/adrenoasm/a2xx/demo"
	"github.com/adrenoasm/a2xx/ir"
)

// buildShader translates a ShaderRequest into an *ir.Shader using only the
// IR Construction API, the same path demo.Build uses internally.
func (s *Server) buildShader(req *ShaderRequest) (*ir.Shader, error) {
	shader, err := s.svc.New()
	if err != nil {
		return nil, err
	}

	for ci, cj := range req.Clauses {
		cf, err := buildClause(shader, cj)
		if err != nil {
			return nil, fmt.Errorf("clause %d: %w", ci, err)
		}
		for ii, ij := range cj.Instrs {
			if _, err := buildInstruction(shader, cf, ij); err != nil {
				return nil, fmt.Errorf("clause %d instruction %d: %w", ci, ii, err)
			}
		}
	}
	return shader, nil
}

func buildClause(shader *ir.Shader, cj ClauseJSON) (*ir.ControlFlow, error) {
	var kind ir.CFKind
	switch cj.Kind {
	case "nop":
		kind = ir.CFNop
	case "exec":
		kind = ir.CFExec
	case "exec_end":
		kind = ir.CFExecEnd
	case "alloc":
		kind = ir.CFAlloc
	default:
		return nil, fmt.Errorf("unknown clause kind %q", cj.Kind)
	}

	cf, err := shader.AddCF(kind)
	if err != nil {
		return nil, err
	}
	if kind == ir.CFAlloc {
		t := ir.AllocOther
		if cj.AllocKind == "coord" {
			t = ir.AllocCoord
		}
		if err := cf.SetAlloc(cj.AllocSize, t); err != nil {
			return nil, err
		}
	}
	return cf, nil
}

func buildInstruction(shader *ir.Shader, cf *ir.ControlFlow, ij InstructionJSON) (*ir.Instruction, error) {
	var instr *ir.Instruction
	var err error

	switch ij.Kind {
	case "fetch":
		var op ir.FetchOp
		switch strings.ToLower(ij.FetchOp) {
		case "vertex":
			op = ir.FetchVertex
		case "sample":
			op = ir.FetchSample
		default:
			return nil, fmt.Errorf("unknown fetch_op %q", ij.FetchOp)
		}
		instr, err = cf.AddFetch(shader.MaxInstructionsPerClause(), op, ij.ConstIndex, ij.Signed, ij.Format, ij.Stride)
	case "alu":
		vec, verr := parseVectorOp(strings.ToLower(ij.VectorOp))
		if verr != nil {
			return nil, verr
		}
		var scalar ir.ScalarOp
		if ij.HasScalar {
			scalar, err = parseScalarOp(strings.ToLower(ij.ScalarOp))
			if err != nil {
				return nil, err
			}
		}
		instr, err = cf.AddALU(shader.MaxInstructionsPerClause(), vec, ij.HasScalar, scalar)
	default:
		return nil, fmt.Errorf("unknown instruction kind %q", ij.Kind)
	}
	if err != nil {
		return nil, err
	}
	instr.Sync = ij.Sync

	for _, rj := range ij.Regs {
		flags, err := parseRegFlags(rj.Flags)
		if err != nil {
			return nil, err
		}
		if _, err := shader.AddRegister(instr, rj.Num, rj.Swizzle, flags); err != nil {
			return nil, err
		}
	}
	return instr, nil
}

func toAssembleResponse(res *assemble.Result, words []uint32) AssembleResponse {
	return AssembleResponse{
		Words: words,
		Info: InfoJSON{
			MaxReg:      res.Info.MaxReg,
			MaxInputReg: res.Info.MaxInputReg,
			RegsWritten: res.Info.RegsWritten,
		},
		Warnings: res.Warnings,
	}
}

// handleAssemble handles POST /api/v1/shader/assemble
func (s *Server) handleAssemble(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ShaderRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	shader, err := s.buildShader(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, words, err := s.svc.Assemble(shader)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toAssembleResponse(res, words))
}

// handleExamples handles GET /api/v1/examples
func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	out := ExamplesResponse{Examples: make(map[string]AssembleResponse)}
	for _, name := range demo.Names() {
		shader, err := demo.Build(name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		res, words, err := s.svc.Assemble(shader)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out.Examples[name] = toAssembleResponse(res, words)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleExampleByName handles GET /api/v1/examples/{name}
func (s *Server) handleExampleByName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/v1/examples/")
	if name == "" {
		writeError(w, http.StatusBadRequest, "example name required")
		return
	}

	shader, err := demo.Build(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	res, words, err := s.svc.Assemble(shader)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toAssembleResponse(res, words))
}
