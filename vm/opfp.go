package vm

// executeOpFP runs one OP-FP (opcode 0x53) instruction: it reads its
// operands from the appropriate register file, dispatches by the control
// unit's broad FPALUOp family with funct3/rs2 sub-selecting within it (the
// same two-level dispatch RV32F itself uses), and writes back to whichever
// register file the result belongs in. Exception flags are folded into the
// CPU's sticky FFlags accumulator.
func (c *CPU) executeOpFP(d DecodedInstruction) {
	ctrl := Control(d)
	a := c.FRegs.MustRead(d.Rs1)
	b := c.FRegs.MustRead(d.Rs2)

	switch ctrl.FPALUOp {
	case FPAdd:
		r, fl := FAdd(a, b)
		c.FFlags.Merge(fl)
		c.FRegs.Write(d.Rd, r, true)
	case FPSub:
		r, fl := FSub(a, b)
		c.FFlags.Merge(fl)
		c.FRegs.Write(d.Rd, r, true)
	case FPMul:
		r, fl := FMul(a, b)
		c.FFlags.Merge(fl)
		c.FRegs.Write(d.Rd, r, true)
	case FPDiv:
		r, fl := FDiv(a, b)
		c.FFlags.Merge(fl)
		c.FRegs.Write(d.Rd, r, true)
	case FPSqrt:
		r, fl := FSqrt(a)
		c.FFlags.Merge(fl)
		c.FRegs.Write(d.Rd, r, true)
	case FPSgnj:
		var r uint32
		switch d.Funct3 {
		case 0:
			r = FSgnj(a, b)
		case 1:
			r = FSgnjn(a, b)
		default:
			r = FSgnjx(a, b)
		}
		c.FRegs.Write(d.Rd, r, true)
	case FPMin:
		var r uint32
		var fl FPExceptions
		if d.Funct3 == 1 {
			r, fl = FMax(a, b)
		} else {
			r, fl = FMin(a, b)
		}
		c.FFlags.Merge(fl)
		c.FRegs.Write(d.Rd, r, true)
	case FPEq:
		var result uint32
		var fl FPExceptions
		switch d.Funct3 {
		case 0:
			ok, f := FLe(a, b)
			fl = f
			if ok {
				result = 1
			}
		case 1:
			ok, f := FLt(a, b)
			fl = f
			if ok {
				result = 1
			}
		default:
			if FEq(a, b) {
				result = 1
			}
		}
		c.FFlags.Merge(fl)
		c.Regs.Write(d.Rd, result, true)
	case FPCvtWS:
		r, fl := FCvtWS(a)
		c.FFlags.Merge(fl)
		c.Regs.Write(d.Rd, uint32(r), true)
	case FPCvtWUS:
		r, fl := FCvtWUS(a)
		c.FFlags.Merge(fl)
		c.Regs.Write(d.Rd, r, true)
	case FPCvtSW:
		r, fl := FCvtSW(int32(c.Regs.MustRead(d.Rs1)))
		c.FFlags.Merge(fl)
		c.FRegs.Write(d.Rd, r, true)
	case FPCvtSWU:
		r, fl := FCvtSWU(c.Regs.MustRead(d.Rs1))
		c.FFlags.Merge(fl)
		c.FRegs.Write(d.Rd, r, true)
	case FPMvXW:
		if d.Funct3 == 1 {
			c.Regs.Write(d.Rd, FClass(a), true)
		} else {
			c.Regs.Write(d.Rd, a, true)
		}
	case FPMvWX:
		c.FRegs.Write(d.Rd, c.Regs.MustRead(d.Rs1), true)
	}
}
