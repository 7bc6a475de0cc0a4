package vm

// Control is the pure function mapping a decoded instruction's
// (opcode, funct3, funct7) to the control-signal bundle that drives the
// rest of the cycle. Unlisted fields stay at their documented defaults
// (all flags clear, ALUOp=ADD, ImmType=I).
func Control(d DecodedInstruction) ControlSignals {
	c := DefaultControlSignals()

	switch d.Opcode {
	case OpcodeRType:
		c.RegWrite = true
		c.ImmType = ImmR
		if d.Funct7 == Funct7MDU {
			c.UseMDU = true
			c.MDUOp = mduOpFor(d.Funct3)
			return c
		}
		if d.Funct3 == Funct3SLL || d.Funct3 == Funct3SRL {
			c.UseShift = true
			c.ShiftOp = shiftOpFor(d.Funct3, d.Funct7)
			return c
		}
		c.ALUOp = aluOpFor(d.Funct3, d.Funct7)

	case OpcodeIType:
		c.RegWrite = true
		c.ALUSrc = true
		c.ImmType = ImmI
		if d.Funct3 == Funct3SLL || d.Funct3 == Funct3SRL {
			c.UseShift = true
			c.ShiftOp = shiftOpFor(d.Funct3, d.Funct7)
			return c
		}
		c.ALUOp = aluOpFor(d.Funct3, Funct7Base)

	case OpcodeLoad:
		c.RegWrite = true
		c.MemRead = true
		c.MemToReg = true
		c.ALUSrc = true
		c.ImmType = ImmI
		c.ALUOp = ALUAdd
		c.MemWidth, c.MemSigned = loadWidth(d.Funct3)

	case OpcodeStore:
		c.MemWrite = true
		c.ALUSrc = true
		c.ImmType = ImmS
		c.ALUOp = ALUAdd
		c.MemWidth, _ = loadWidth(d.Funct3)

	case OpcodeBranch:
		c.Branch = true
		c.ImmType = ImmB
		c.ALUOp = ALUSub
		c.BranchCond = d.Funct3

	case OpcodeJAL:
		c.RegWrite = true
		c.Jump = true
		c.ImmType = ImmJ

	case OpcodeJALR:
		c.RegWrite = true
		c.ALUSrc = true
		c.Jump = true
		c.ImmType = ImmI
		c.ALUOp = ALUAdd

	case OpcodeLUI:
		c.RegWrite = true
		c.ALUSrc = true
		c.ImmType = ImmU
		c.ALUOp = ALULUI

	case OpcodeAUIPC:
		c.RegWrite = true
		c.ALUSrc = true
		c.ImmType = ImmU
		c.ALUOp = ALUAdd

	case OpcodeLoadFP:
		c.FPRegWrite = true
		c.MemRead = true
		c.ALUSrc = true
		c.ImmType = ImmI
		c.ALUOp = ALUAdd
		c.MemWidth = 4

	case OpcodeStoreFP:
		c.MemWrite = true
		c.ALUSrc = true
		c.ImmType = ImmS
		c.ALUOp = ALUAdd
		c.MemWidth = 4

	case OpcodeOpFP:
		c.ImmType = ImmR
		c.FPALUOp, c.RegWrite, c.FPRegWrite = fpOpFor(d.Funct7, d.Rs2)

	default:
		// UNKNOWN: default zero bundle, PC simply advances by 4.
	}

	return c
}

func aluOpFor(funct3, funct7 uint32) ALUOp {
	switch funct3 {
	case Funct3ADD:
		if funct7 == Funct7Alt {
			return ALUSub
		}
		return ALUAdd
	case Funct3AND:
		return ALUAnd
	case Funct3OR:
		return ALUOr
	case Funct3XOR:
		return ALUXor
	case Funct3SLT:
		return ALUSLT
	case Funct3SLTU:
		return ALUSLTU
	default:
		return ALUAdd
	}
}

func shiftOpFor(funct3, funct7 uint32) ShiftOp {
	switch funct3 {
	case Funct3SLL:
		return ShiftLL
	case Funct3SRL:
		if funct7 == Funct7Alt {
			return ShiftRA
		}
		return ShiftRL
	default:
		return ShiftNone
	}
}

func mduOpFor(funct3 uint32) MDUOp {
	switch funct3 {
	case Funct3MUL:
		return MDUMul
	case Funct3MULH:
		return MDUMulH
	case Funct3MULHSU:
		return MDUMulHSU
	case Funct3MULHU:
		return MDUMulHU
	case Funct3DIV:
		return MDUDiv
	case Funct3DIVU:
		return MDUDivU
	case Funct3REM:
		return MDURem
	case Funct3REMU:
		return MDURemU
	default:
		return MDUNone
	}
}

// loadWidth returns the access width in bytes and whether it sign-extends,
// for both loads and (width only) stores.
func loadWidth(funct3 uint32) (width uint32, signed bool) {
	switch funct3 {
	case Funct3Byte:
		return 1, true
	case Funct3Half:
		return 2, true
	case Funct3Word:
		return 4, false
	case Funct3ByteUnsigned:
		return 1, false
	case Funct3HalfUnsigned:
		return 2, false
	default:
		return 4, false
	}
}

func fpOpFor(funct7, rs2 uint32) (op FPOp, regWrite, fpRegWrite bool) {
	switch funct7 {
	case f7FAdd:
		return FPAdd, false, true
	case f7FSub:
		return FPSub, false, true
	case f7FMul:
		return FPMul, false, true
	case f7FDiv:
		return FPDiv, false, true
	case f7FSqrt:
		return FPSqrt, false, true
	case f7FSgnj:
		return FPSgnj, false, true // funct3 within the CPU execute step selects J/JN/JX
	case f7FMinMax:
		return FPMin, false, true // funct3 selects MIN/MAX
	case f7FCmp:
		return FPEq, true, false // funct3 selects EQ/LT/LE
	case f7FCvtWS:
		if rs2 == 1 {
			return FPCvtWUS, true, false
		}
		return FPCvtWS, true, false
	case f7FCvtSW:
		if rs2 == 1 {
			return FPCvtSWU, false, true
		}
		return FPCvtSW, false, true
	case f7FMvXW:
		return FPMvXW, true, false // also covers FCLASS.S, selected by funct3 at execute
	case f7FMvWX:
		return FPMvWX, false, true
	default:
		return FPNone, false, false
	}
}
