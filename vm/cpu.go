package vm

// CPU is the integrator: PC, halted flag, cycle/instruction counters, the
// integer and floating-point register files, and the two memory images.
// The register file and memories are created once and persist across
// Reset, which only re-zeros registers and counters.
type CPU struct {
	PC     uint32
	Halted bool

	Cycles       uint64
	Instructions uint64

	Regs  *RegisterFile
	FRegs *RegisterFile
	IMem  *Memory
	DMem  *Memory

	// FFlags accumulates the sticky IEEE-754 exception flags across every
	// FPU operation executed, per the "caller accumulates them" contract.
	FFlags FPExceptions

	// Warnings accumulates non-fatal memory-fault messages: out-of-range
	// or misaligned accesses inside a cycle are logged here and the
	// offending read/write is substituted with zero/dropped rather than
	// aborting the run.
	Warnings []string

	// OnStep, if set, is invoked once per completed cycle with a
	// diagnostic snapshot; internal/trace's recorder hangs off this hook
	// without vm needing to import it.
	OnStep func(StepTrace)
}

// NewCPU constructs a CPU over the given instruction and data memory
// windows, with freshly zeroed register files.
func NewCPU(imem, dmem *Memory) *CPU {
	return &CPU{
		Regs:  NewIntegerRegisterFile(),
		FRegs: NewFloatRegisterFile(),
		IMem:  imem,
		DMem:  dmem,
	}
}

// Reset sets the PC to entry and re-zeros the counters, halted flag, FP
// exception flags and both register files, but leaves the memory images
// intact.
func (c *CPU) Reset(entry uint32) {
	c.PC = entry
	c.Halted = false
	c.Cycles = 0
	c.Instructions = 0
	c.FFlags = FPExceptions{}
	c.Regs.Reset()
	c.FRegs.Reset()
}

// RegWrite records one committed integer or floating-point register write,
// for trace diagnostics.
type RegWrite struct {
	Addr uint32
	Old  uint32
	New  uint32
	FP   bool
}

// MemWrite records one committed data-memory word write.
type MemWrite struct {
	Addr uint32
	Old  uint32
	New  uint32
}

// StepTrace is the diagnostic snapshot handed to CPU.OnStep after each
// completed cycle.
type StepTrace struct {
	Cycle      uint64
	PC         uint32
	Decoded    DecodedInstruction
	RegWrites  []RegWrite
	MemWrites  []MemWrite
	Flags      NZCV
	NextPC     uint32
	Halted     bool
}
