package trace

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Inspector is a scrollable post-run view over a Recorder's entries: a
// simulation runs to completion first (it has no interactive breakpoints),
// then this walks the recorded cycle-by-cycle history. Left/right pager keys
// step one cycle; Home/End jump to the ends; q or Ctrl-C quits.
type Inspector struct {
	app      *tview.Application
	list     *tview.TextView
	detail   *tview.TextView
	recorder *Recorder
	cursor   int
}

// NewInspector builds an Inspector over the given Recorder's entries.
func NewInspector(r *Recorder) *Inspector {
	insp := &Inspector{
		app:      tview.NewApplication(),
		recorder: r,
	}
	insp.build()
	return insp
}

func (i *Inspector) build() {
	i.list = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	i.list.SetBorder(true).SetTitle(" Cycles ")

	i.detail = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	i.detail.SetBorder(true).SetTitle(" Cycle detail ")

	layout := tview.NewFlex().
		AddItem(i.list, 0, 2, false).
		AddItem(i.detail, 0, 3, false)

	i.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyRight, tcell.KeyDown:
			i.move(1)
			return nil
		case tcell.KeyLeft, tcell.KeyUp:
			i.move(-1)
			return nil
		case tcell.KeyHome:
			i.moveTo(0)
			return nil
		case tcell.KeyEnd:
			i.moveTo(len(i.recorder.Entries) - 1)
			return nil
		case tcell.KeyEscape, tcell.KeyCtrlC:
			i.app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				i.app.Stop()
				return nil
			}
		}
		return event
	})

	i.app.SetRoot(layout, true)
	i.render()
}

func (i *Inspector) move(delta int) {
	i.moveTo(i.cursor + delta)
}

func (i *Inspector) moveTo(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(i.recorder.Entries) {
		idx = len(i.recorder.Entries) - 1
	}
	if idx < 0 {
		idx = 0
	}
	i.cursor = idx
	i.render()
}

func (i *Inspector) render() {
	i.list.Clear()
	for idx, e := range i.recorder.Entries {
		marker := "  "
		if idx == i.cursor {
			marker = "> "
		}
		fmt.Fprintf(i.list, "%s%6d  0x%08X  %s\n", marker, e.Cycle, e.PC, e.Mnemonic)
	}

	i.detail.Clear()
	if i.cursor >= len(i.recorder.Entries) {
		return
	}
	e := i.recorder.Entries[i.cursor]
	fmt.Fprintf(i.detail, "cycle %d\nPC 0x%08X -> next 0x%08X\n%s\n\n", e.Cycle, e.PC, e.NextPC, e.Mnemonic)
	for _, rw := range e.RegWrites {
		bank := "x"
		if rw.FP {
			bank = "f"
		}
		fmt.Fprintf(i.detail, "%s%d: 0x%08X -> 0x%08X\n", bank, rw.Addr, rw.Old, rw.New)
	}
	for _, mw := range e.MemWrites {
		fmt.Fprintf(i.detail, "[0x%08X]: 0x%08X -> 0x%08X\n", mw.Addr, mw.Old, mw.New)
	}
	if e.Halted {
		fmt.Fprintln(i.detail, "(halted)")
	}
}

// Run blocks until the user quits the inspector.
func (i *Inspector) Run() error {
	if err := i.app.Run(); err != nil {
		return fmt.Errorf("trace: inspector: %w", err)
	}
	return nil
}
