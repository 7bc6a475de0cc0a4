package vm

import "fmt"

// RunResult summarizes a Run call: cycles and instructions actually
// executed, whether the program halted on its own, and the final PC.
type RunResult struct {
	Cycles       uint64
	Instructions uint64
	Halted       bool
	FinalPC      uint32
}

// Step executes exactly one cycle: fetch, halt-check, decode, control,
// operand select, execute, memory, writeback, branch/jump resolution, PC
// advance. It is a no-op once the CPU is halted.
func (c *CPU) Step() error {
	if c.Halted {
		return nil
	}

	word, ferr := c.IMem.ReadWord(c.PC)
	if ferr != nil {
		// Unmapped or misaligned fetch is equivalent to a zero
		// instruction, which is itself the halt sentinel.
		word = 0
	}
	if word == 0 {
		c.Halted = true
		return nil
	}

	d := Decode(word)
	if d.Name == "JAL" && d.Rd == 0 && d.ImmJ == 0 {
		// Reachable only if a future decoder revision stops tying the
		// J-immediate's low bits to the opcode's own bits; kept as the
		// second documented halt sentinel regardless.
		c.Halted = true
		return nil
	}

	ctrl := Control(d)

	rs1v := c.Regs.MustRead(d.Rs1)
	rs2v := c.Regs.MustRead(d.Rs2)

	aluB := rs2v
	if ctrl.ALUSrc {
		aluB = immediateFor(d, ctrl.ImmType)
	}

	var aluResult uint32
	var flags NZCV
	switch {
	case ctrl.UseShift:
		shamt := aluB & ShiftMask
		aluResult = ShiftCPU(rs1v, shamt, ctrl.ShiftOp)
		flags = NZCV{N: aluResult&SignBitMask != 0, Z: aluResult == 0}
	case ctrl.UseMDU:
		aluResult = MDU(rs1v, aluB, ctrl.MDUOp)
	case ctrl.ALUOp == ALULUI:
		aluResult = aluB
	default:
		r := ALU(rs1v, aluB, ctrl.ALUOp)
		aluResult = r.Result
		flags = r.Flags
	}

	var regWrites []RegWrite
	var memWrites []MemWrite

	isFPMem := d.Opcode == OpcodeLoadFP || d.Opcode == OpcodeStoreFP

	var memWord uint32
	if ctrl.MemRead && !isFPMem {
		memWord = c.readMemory(aluResult, ctrl.MemWidth, ctrl.MemSigned)
	}
	if ctrl.MemWrite && !isFPMem {
		if before, err := c.DMem.ReadWord(aluResult &^ 3); err == nil {
			if mw, ok := c.writeMemory(aluResult, rs2v, ctrl.MemWidth); ok {
				memWrites = append(memWrites, MemWrite{Addr: aluResult &^ 3, Old: before, New: mw})
			}
		} else {
			c.writeMemory(aluResult, rs2v, ctrl.MemWidth)
		}
	}

	if d.Opcode == OpcodeLoadFP {
		bits := c.readMemory(aluResult, 4, false)
		old := c.FRegs.MustRead(d.Rd)
		c.FRegs.Write(d.Rd, bits, true)
		regWrites = append(regWrites, RegWrite{Addr: d.Rd, Old: old, New: bits, FP: true})
	}
	if d.Opcode == OpcodeStoreFP {
		fval := c.FRegs.MustRead(d.Rs2)
		if before, err := c.DMem.ReadWord(aluResult &^ 3); err == nil {
			if mw, ok := c.writeMemory(aluResult, fval, 4); ok {
				memWrites = append(memWrites, MemWrite{Addr: aluResult &^ 3, Old: before, New: mw})
			}
		} else {
			c.writeMemory(aluResult, fval, 4)
		}
	}
	if d.Opcode == OpcodeOpFP {
		c.executeOpFP(d)
	}

	var writeData uint32
	switch {
	case ctrl.MemToReg:
		writeData = memWord
	case ctrl.Jump:
		writeData = c.PC + 4
	default:
		writeData = aluResult
	}

	branchTaken := ctrl.Branch && evaluateBranch(ctrl.BranchCond, rs1v, rs2v)

	nextPC := c.PC + 4
	switch {
	case ctrl.Jump && d.Opcode == OpcodeJAL:
		nextPC = c.PC + d.ImmJ
	case ctrl.Jump && d.Opcode == OpcodeJALR:
		nextPC = (rs1v + d.ImmI) &^ 1
	case branchTaken:
		nextPC = c.PC + d.ImmB
	}

	if ctrl.RegWrite && d.Opcode != OpcodeOpFP {
		old := c.Regs.MustRead(d.Rd)
		c.Regs.Write(d.Rd, writeData, true)
		if d.Rd != 0 {
			regWrites = append(regWrites, RegWrite{Addr: d.Rd, Old: old, New: writeData})
		}
	}

	c.Regs.ClockEdge()
	c.FRegs.ClockEdge()

	if c.OnStep != nil {
		c.OnStep(StepTrace{
			Cycle:     c.Cycles,
			PC:        c.PC,
			Decoded:   d,
			RegWrites: regWrites,
			MemWrites: memWrites,
			Flags:     flags,
			NextPC:    nextPC,
			Halted:    c.Halted,
		})
	}

	c.PC = nextPC
	c.Cycles++
	c.Instructions++
	return nil
}

// immediateFor selects the immediate the control unit named; B-immediates
// are never routed here since they only feed the branch adder on the PC
// side, per the operand-select rule.
func immediateFor(d DecodedInstruction, t ImmType) uint32 {
	switch t {
	case ImmI:
		return d.ImmI
	case ImmS:
		return d.ImmS
	case ImmU:
		return d.ImmU
	case ImmJ:
		return d.ImmJ
	default:
		return 0
	}
}

func evaluateBranch(funct3, a, b uint32) bool {
	switch funct3 {
	case Funct3BEQ:
		return a == b
	case Funct3BNE:
		return a != b
	case Funct3BLT:
		return int32(a) < int32(b)
	case Funct3BGE:
		return int32(a) >= int32(b)
	case Funct3BLTU:
		return a < b
	case Funct3BGEU:
		return a >= b
	default:
		return false
	}
}

// readMemory performs a non-fatal load: an out-of-range or misaligned
// access is logged and substituted with zero, keeping the simulation
// running rather than aborting the cycle.
func (c *CPU) readMemory(addr uint32, width uint32, signed bool) uint32 {
	switch width {
	case 1:
		v, err := c.DMem.ReadByte(addr)
		if err != nil {
			c.warn("read", addr, err)
			return 0
		}
		if signed {
			return uint32(int32(int8(v)))
		}
		return uint32(v)
	case 2:
		v, err := c.DMem.ReadHalfword(addr)
		if err != nil {
			c.warn("read", addr, err)
			return 0
		}
		if signed {
			return uint32(int32(int16(v)))
		}
		return uint32(v)
	default:
		v, err := c.DMem.ReadWord(addr)
		if err != nil {
			c.warn("read", addr, err)
			return 0
		}
		return v
	}
}

// writeMemory performs a non-fatal store, returning the resulting word
// value and whether the write actually landed (for trace bookkeeping).
func (c *CPU) writeMemory(addr uint32, value uint32, width uint32) (uint32, bool) {
	var err error
	switch width {
	case 1:
		err = c.DMem.WriteByte(addr, uint8(value))
	case 2:
		err = c.DMem.WriteHalfword(addr, uint16(value))
	default:
		err = c.DMem.WriteWord(addr, value)
	}
	if err != nil {
		c.warn("write", addr, err)
		return 0, false
	}
	word, _ := c.DMem.ReadWord(addr &^ 3)
	return word, true
}

func (c *CPU) warn(kind string, addr uint32, err error) {
	c.Warnings = append(c.Warnings, fmt.Sprintf("cycle %d: non-fatal memory %s fault at 0x%08X: %v", c.Cycles, kind, addr, err))
}

// Run iterates Step until the CPU halts or maxCycles is reached, whichever
// comes first.
func (c *CPU) Run(maxCycles uint64) RunResult {
	for c.Cycles < maxCycles && !c.Halted {
		_ = c.Step()
	}
	return RunResult{
		Cycles:       c.Cycles,
		Instructions: c.Instructions,
		Halted:       c.Halted,
		FinalPC:      c.PC,
	}
}
