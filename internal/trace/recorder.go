// Package trace records per-cycle execution history and presents it, both
// as a flat log and as a scrollable post-run inspector.
package trace

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwillis/rv32sim/vm"
)

// Entry is one recorded cycle, flattened from vm.StepTrace into a form the
// log writer and the inspector both consume directly.
type Entry struct {
	Cycle     uint64
	PC        uint32
	Mnemonic  string
	RegWrites []vm.RegWrite
	MemWrites []vm.MemWrite
	NextPC    uint32
	Halted    bool
}

// Recorder accumulates Entries via a callback meant to be installed as a
// CPU's OnStep hook; it caps retained entries at MaxEntries (0 means
// unbounded) so a long-running program doesn't grow the log without limit.
type Recorder struct {
	MaxEntries int
	Entries    []Entry
	dropped    uint64
}

// NewRecorder creates a Recorder retaining at most maxEntries entries (0 for
// unbounded).
func NewRecorder(maxEntries int) *Recorder {
	return &Recorder{MaxEntries: maxEntries}
}

// OnStep is installed as a vm.CPU's OnStep hook.
func (r *Recorder) OnStep(st vm.StepTrace) {
	if r.MaxEntries > 0 && len(r.Entries) >= r.MaxEntries {
		r.dropped++
		return
	}
	r.Entries = append(r.Entries, Entry{
		Cycle:     st.Cycle,
		PC:        st.PC,
		Mnemonic:  st.Decoded.Name,
		RegWrites: st.RegWrites,
		MemWrites: st.MemWrites,
		NextPC:    st.NextPC,
		Halted:    st.Halted,
	})
}

// Dropped reports how many cycles were recorded past MaxEntries and discarded.
func (r *Recorder) Dropped() uint64 {
	return r.dropped
}

// WriteLog renders the recorded entries to path, one line per cycle.
func (r *Recorder) WriteLog(path string) error {
	f, err := os.Create(path) // #nosec G304 -- caller-supplied trace output path
	if err != nil {
		return fmt.Errorf("trace: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range r.Entries {
		fmt.Fprintf(w, "%6d  PC=0x%08X  %-8s", e.Cycle, e.PC, e.Mnemonic)
		for _, rw := range e.RegWrites {
			bank := "x"
			if rw.FP {
				bank = "f"
			}
			fmt.Fprintf(w, "  %s%d: 0x%08X -> 0x%08X", bank, rw.Addr, rw.Old, rw.New)
		}
		for _, mw := range e.MemWrites {
			fmt.Fprintf(w, "  [0x%08X]: 0x%08X -> 0x%08X", mw.Addr, mw.Old, mw.New)
		}
		fmt.Fprintln(w)
	}
	if r.dropped > 0 {
		fmt.Fprintf(w, "... %d further cycles dropped past the trace limit\n", r.dropped)
	}
	return w.Flush()
}
