package vm

import "fmt"

// RegisterFile is the staged-write, clock-edge-commit model the integer and
// floating-point banks share: Write stages a value, ClockEdge commits every
// staged write at once, and Read always observes the last committed value.
// hardZero makes address 0 read-as-zero and silently drop writes (x0); the
// floating-point bank sets it false, since f0 is an ordinary register.
type RegisterFile struct {
	committed [RegCount]uint32
	staged    [RegCount]uint32
	pending   [RegCount]bool
	hardZero  bool
}

// NewIntegerRegisterFile returns a 32-entry bank with x0 hard-wired to zero.
func NewIntegerRegisterFile() *RegisterFile {
	return &RegisterFile{hardZero: true}
}

// NewFloatRegisterFile returns a 32-entry bank with no hard-wired register.
func NewFloatRegisterFile() *RegisterFile {
	return &RegisterFile{hardZero: false}
}

// Read returns addr's currently-latched value. Out-of-range addresses fail.
func (r *RegisterFile) Read(addr uint32) (uint32, error) {
	if addr >= RegCount {
		return 0, fmt.Errorf("register file: address %d out of range [0,%d)", addr, RegCount)
	}
	if r.hardZero && addr == 0 {
		return 0, nil
	}
	return r.committed[addr], nil
}

// MustRead is Read without the error return, for callers (the CPU's
// operand-select stage) that have already range-checked addr by
// construction (5-bit decode field, always < 32).
func (r *RegisterFile) MustRead(addr uint32) uint32 {
	v, err := r.Read(addr)
	if err != nil {
		panic(err)
	}
	return v
}

// Write stages data for addr when enable is true; the write only becomes
// observable after the next ClockEdge. Writes to address 0 are silently
// dropped on a hard-zero bank, per the register-file invariant, regardless
// of the clock-edge commit model applied to the rest of the file.
func (r *RegisterFile) Write(addr uint32, data uint32, enable bool) error {
	if addr >= RegCount {
		return fmt.Errorf("register file: address %d out of range [0,%d)", addr, RegCount)
	}
	if !enable {
		return nil
	}
	if r.hardZero && addr == 0 {
		return nil
	}
	r.staged[addr] = data
	r.pending[addr] = true
	return nil
}

// ClockEdge commits every staged write simultaneously and clears the
// pending set.
func (r *RegisterFile) ClockEdge() {
	for i := 0; i < RegCount; i++ {
		if r.pending[i] {
			r.committed[i] = r.staged[i]
			r.pending[i] = false
		}
	}
}

// Reset re-zeros every committed and staged register.
func (r *RegisterFile) Reset() {
	r.committed = [RegCount]uint32{}
	r.staged = [RegCount]uint32{}
	r.pending = [RegCount]bool{}
}

// Snapshot copies every committed register, for diagnostics.
func (r *RegisterFile) Snapshot() [RegCount]uint32 {
	return r.committed
}
