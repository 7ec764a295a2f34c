// Package tui implements a read-only terminal inspector for an assembled
// shader: clause list, per-clause instruction list, and encode stats.
// There is nothing to execute, so there are no breakpoints or stepping.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/adrenoasm/a2xx/assemble"
	"github.com/adrenoasm/a2xx/ir"
)

// Inspector is the text user interface for a single assembled shader.
type Inspector struct {
	Shader *ir.Shader
	Words  []uint32
	Info   assemble.Info

	App   *tview.Application
	Pages *tview.Pages

	ClauseList  *tview.List
	InstrView   *tview.TextView
	StatsView   *tview.TextView
	WordsView   *tview.TextView

	selectedClause int
}

// NewInspector builds an Inspector over an already-assembled shader.
func NewInspector(shader *ir.Shader, words []uint32, info assemble.Info) *Inspector {
	insp := &Inspector{
		Shader: shader,
		Words:  words,
		Info:   info,
		App:    tview.NewApplication(),
	}

	insp.initializeViews()
	insp.buildLayout()
	insp.setupKeyBindings()
	return insp
}

func (t *Inspector) initializeViews() {
	t.ClauseList = tview.NewList().ShowSecondaryText(false)
	t.ClauseList.SetBorder(true).SetTitle(" Clauses ")
	t.ClauseList.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		t.selectedClause = index
		t.UpdateInstrView()
	})

	t.InstrView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.InstrView.SetBorder(true).SetTitle(" Instructions ")

	t.StatsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	t.StatsView.SetBorder(true).SetTitle(" Stats ")

	t.WordsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.WordsView.SetBorder(true).SetTitle(" Encoded Words ")
}

func (t *Inspector) buildLayout() {
	left := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.ClauseList, 0, 1, true).
		AddItem(t.StatsView, 6, 0, false)

	right := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.InstrView, 0, 2, false).
		AddItem(t.WordsView, 0, 1, false)

	main := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(left, 0, 1, true).
		AddItem(right, 0, 2, false)

	t.Pages = tview.NewPages().AddPage("main", main, true, true)
}

func (t *Inspector) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEsc:
			t.App.Stop()
			return nil
		}
		return event
	})
}

// RefreshAll rebuilds every panel from the current shader and stats.
func (t *Inspector) RefreshAll() {
	t.UpdateClauseList()
	t.UpdateStatsView()
	t.UpdateWordsView()
	t.UpdateInstrView()
}

// UpdateClauseList populates the clause list with kind/addr/count/sequence.
func (t *Inspector) UpdateClauseList() {
	t.ClauseList.Clear()
	for i, cf := range t.Shader.CFs {
		label := fmt.Sprintf("%2d: %-8s addr=%#03x count=%d seq=%#04x",
			i, cf.Kind, cf.Addr, cf.Count, cf.Sequence)
		t.ClauseList.AddItem(label, "", 0, nil)
	}
}

// UpdateInstrView shows the instructions of the selected clause.
func (t *Inspector) UpdateInstrView() {
	t.InstrView.Clear()
	if t.selectedClause < 0 || t.selectedClause >= len(t.Shader.CFs) {
		t.InstrView.SetText("[yellow]no clause selected[white]")
		return
	}

	cf := t.Shader.CFs[t.selectedClause]
	if cf.Kind == ir.CFAlloc {
		t.InstrView.SetText(fmt.Sprintf("ALLOC size=%d kind=%v", cf.AllocSize, cf.AllocKind))
		return
	}

	var lines []string
	for i, instr := range cf.Instrs {
		lines = append(lines, formatInstruction(i, instr))
	}
	if len(lines) == 0 {
		lines = append(lines, "[yellow]no instructions[white]")
	}
	t.InstrView.SetText(strings.Join(lines, "\n"))
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

// UpdateStatsView shows the encode stats: max_reg, max_input_reg, and the
// regs_written bitmap as a hex value.
func (t *Inspector) UpdateStatsView() {
	t.StatsView.Clear()
	lines := []string{
		fmt.Sprintf("max_reg: %d", t.Info.MaxReg),
		fmt.Sprintf("max_input_reg: %d", t.Info.MaxInputReg),
		fmt.Sprintf("regs_written: %#x", t.Info.RegsWritten),
		fmt.Sprintf("words: %d", len(t.Words)),
	}
	t.StatsView.SetText(strings.Join(lines, "\n"))
}

// UpdateWordsView shows the encoded words, eight per line, in hex.
func (t *Inspector) UpdateWordsView() {
	t.WordsView.Clear()
	var lines []string
	for i := 0; i < len(t.Words); i += 8 {
		end := i + 8
		if end > len(t.Words) {
			end = len(t.Words)
		}
		row := make([]string, 0, end-i)
		for _, w := range t.Words[i:end] {
			row = append(row, fmt.Sprintf("%#08x", w))
		}
		lines = append(lines, fmt.Sprintf("%04d: %s", i, strings.Join(row, " ")))
	}
	t.WordsView.SetText(strings.Join(lines, "\n"))
}

// Run starts the inspector application and blocks until the user quits.
func (t *Inspector) Run() error {
	t.RefreshAll()
	if len(t.Shader.CFs) > 0 {
		t.ClauseList.SetCurrentItem(0)
	}
	return t.App.SetRoot(t.Pages, true).SetFocus(t.ClauseList).Run()
}

// Stop stops the running application.
func (t *Inspector) Stop() {
	t.App.Stop()
}

// Run is the package-level convenience entry point used by the CLI.
func Run(shader *ir.Shader, words []uint32, info assemble.Info) error {
	return NewInspector(shader, words, info).Run()
}
