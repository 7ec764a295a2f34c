// Package gui implements a read-only desktop inspector for an assembled
// shader, mirroring the terminal inspector's three panels with fyne
// widgets: a clause list, a per-clause instruction grid, and a stats panel.
package gui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/adrenoasm/a2xx/assemble"
	"github.com/adrenoasm/a2xx/ir"
)

// Window wraps the fyne application and window showing one assembled
// shader.
type Window struct {
	Shader *ir.Shader
	Words  []uint32
	Info   assemble.Info

	app    fyne.App
	window fyne.Window

	clauseList *widget.List
	instrGrid  *widget.TextGrid
	statsGrid  *widget.TextGrid
	wordsGrid  *widget.TextGrid

	selectedClause int
}

// NewWindow builds a Window over an already-assembled shader.
func NewWindow(shader *ir.Shader, words []uint32, info assemble.Info) *Window {
	w := &Window{
		Shader:         shader,
		Words:          words,
		Info:           info,
		app:            app.New(),
		selectedClause: -1,
	}
	w.window = w.app.NewWindow("Shader Inspector")
	w.build()
	return w
}

func (w *Window) build() {
	w.clauseList = widget.NewList(
		func() int { return len(w.Shader.CFs) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			cf := w.Shader.CFs[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%2d: %-8s addr=%#03x count=%d seq=%#04x",
				id, cf.Kind, cf.Addr, cf.Count, cf.Sequence))
		},
	)
	w.clauseList.OnSelected = func(id widget.ListItemID) {
		w.selectedClause = id
		w.updateInstrGrid()
	}

	w.instrGrid = widget.NewTextGrid()
	w.statsGrid = widget.NewTextGrid()
	w.wordsGrid = widget.NewTextGrid()

	left := container.NewBorder(widget.NewLabel("Clauses"), w.statsGrid, nil, nil, w.clauseList)
	right := container.NewVSplit(
		container.NewScroll(w.instrGrid),
		container.NewScroll(w.wordsGrid),
	)

	split := container.NewHSplit(left, right)
	split.Offset = 0.35

	w.window.SetContent(split)
	w.window.Resize(fyne.NewSize(960, 600))

	w.refreshAll()
	if len(w.Shader.CFs) > 0 {
		w.clauseList.Select(0)
	}
}

func (w *Window) refreshAll() {
	w.updateStatsGrid()
	w.updateWordsGrid()
	w.updateInstrGrid()
}

func (w *Window) updateInstrGrid() {
	if w.selectedClause < 0 || w.selectedClause >= len(w.Shader.CFs) {
		w.instrGrid.SetText("no clause selected")
		return
	}

	cf := w.Shader.CFs[w.selectedClause]
	if cf.Kind == ir.CFAlloc {
		w.instrGrid.SetText(fmt.Sprintf("ALLOC size=%d kind=%v", cf.AllocSize, cf.AllocKind))
		return
	}

	var lines []string
	for i, instr := range cf.Instrs {
		lines = append(lines, formatInstruction(i, instr))
	}
	if len(lines) == 0 {
		lines = append(lines, "no instructions")
	}
	w.instrGrid.SetText(strings.Join(lines, "\n"))
}

func formatInstruction(index int, instr *ir.Instruction) string {
	sync := " "
	if instr.Sync {
		sync = "S"
	}

	var opDesc string
	switch instr.Kind {
	case ir.InstrFetch:
		opDesc = fmt.Sprintf("FETCH op=%v const=%d signed=%v fmt=%#x stride=%d",
			instr.FetchOp, instr.ConstIndex, instr.Signed, instr.Format, instr.Stride)
	case ir.InstrALU:
		opDesc = fmt.Sprintf("ALU %v", instr.VectorOp)
		if instr.HasScalar {
			opDesc += fmt.Sprintf(" / %v", instr.ScalarOp)
		}
	}

	regs := make([]string, 0, len(instr.Regs))
	for _, r := range instr.Regs {
		regs = append(regs, formatRegister(r))
	}

	return fmt.Sprintf("[%s] %2d: %-50s %s", sync, index, opDesc, strings.Join(regs, ", "))
}

func formatRegister(r *ir.Register) string {
	mods := ""
	if r.Flags&ir.FlagConst != 0 {
		mods += "c"
	}
	if r.Flags&ir.FlagExport != 0 {
		mods += "e"
	}
	if r.Flags&ir.FlagNegate != 0 {
		mods += "-"
	}
	if r.Flags&ir.FlagAbs != 0 {
		mods += "|"
	}
	if mods == "" {
		return fmt.Sprintf("R%d.%s", r.Num, r.Swizzle)
	}
	return fmt.Sprintf("R%d.%s[%s]", r.Num, r.Swizzle, mods)
}

func (w *Window) updateStatsGrid() {
	lines := []string{
		fmt.Sprintf("max_reg: %d", w.Info.MaxReg),
		fmt.Sprintf("max_input_reg: %d", w.Info.MaxInputReg),
		fmt.Sprintf("regs_written: %#x", w.Info.RegsWritten),
		fmt.Sprintf("words: %d", len(w.Words)),
	}
	w.statsGrid.SetText(strings.Join(lines, "\n"))
}

func (w *Window) updateWordsGrid() {
	var lines []string
	for i := 0; i < len(w.Words); i += 8 {
		end := i + 8
		if end > len(w.Words) {
			end = len(w.Words)
		}
		row := make([]string, 0, end-i)
		for _, word := range w.Words[i:end] {
			row = append(row, fmt.Sprintf("%#08x", word))
		}
		lines = append(lines, fmt.Sprintf("%04d: %s", i, strings.Join(row, " ")))
	}
	w.wordsGrid.SetText(strings.Join(lines, "\n"))
}

// Run shows the window and blocks until it is closed.
func (w *Window) Run() {
	w.window.ShowAndRun()
}

// Run is the package-level convenience entry point used by the CLI.
func Run(shader *ir.Shader, words []uint32, info assemble.Info) {
	NewWindow(shader, words, info).Run()
}
