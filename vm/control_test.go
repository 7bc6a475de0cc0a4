package vm

import "testing"

func TestControlRTypeALU(t *testing.T) {
	d := Decode(uint32(OpcodeRType))
	c := Control(d)
	if !c.RegWrite || c.ALUOp != ALUAdd || c.UseShift || c.UseMDU {
		t.Errorf("Control(ADD) = %+v, want RegWrite, ALUAdd, no shift/MDU", c)
	}
}

func TestControlRTypeMDU(t *testing.T) {
	d := Decode(uint32(OpcodeRType) | (Funct7MDU << 25) | (Funct3MUL << 12))
	c := Control(d)
	if !c.UseMDU || c.MDUOp != MDUMul {
		t.Errorf("Control(MUL) = %+v, want UseMDU with MDUMul", c)
	}
}

func TestControlLoadWidthAndSign(t *testing.T) {
	d := Decode(uint32(OpcodeLoad) | (Funct3Byte << 12))
	c := Control(d)
	if !c.MemRead || !c.MemToReg || c.MemWidth != 1 || !c.MemSigned {
		t.Errorf("Control(LB) = %+v, want MemRead width=1 signed", c)
	}

	d = Decode(uint32(OpcodeLoad) | (Funct3ByteUnsigned << 12))
	c = Control(d)
	if c.MemSigned {
		t.Errorf("Control(LBU) = %+v, want unsigned", c)
	}
}

func TestControlStore(t *testing.T) {
	d := Decode(uint32(OpcodeStore) | (Funct3Word << 12))
	c := Control(d)
	if !c.MemWrite || c.MemWidth != 4 || c.RegWrite {
		t.Errorf("Control(SW) = %+v, want MemWrite width=4 no RegWrite", c)
	}
}

func TestControlBranchSetsCond(t *testing.T) {
	d := Decode(uint32(OpcodeBranch) | (Funct3BLT << 12))
	c := Control(d)
	if !c.Branch || c.BranchCond != Funct3BLT {
		t.Errorf("Control(BLT) = %+v, want Branch with BranchCond=Funct3BLT", c)
	}
}

func TestControlJALAndJALR(t *testing.T) {
	d := Decode(uint32(OpcodeJAL))
	c := Control(d)
	if !c.Jump || !c.RegWrite || c.ImmType != ImmJ {
		t.Errorf("Control(JAL) = %+v, want Jump+RegWrite+ImmJ", c)
	}

	d = Decode(uint32(OpcodeJALR))
	c = Control(d)
	if !c.Jump || !c.ALUSrc || c.ImmType != ImmI {
		t.Errorf("Control(JALR) = %+v, want Jump+ALUSrc+ImmI", c)
	}
}

func TestControlLUIAndAUIPC(t *testing.T) {
	d := Decode(uint32(OpcodeLUI))
	c := Control(d)
	if c.ALUOp != ALULUI || c.ImmType != ImmU {
		t.Errorf("Control(LUI) = %+v, want ALULUI+ImmU", c)
	}

	d = Decode(uint32(OpcodeAUIPC))
	c = Control(d)
	if c.ALUOp != ALUAdd || c.ImmType != ImmU {
		t.Errorf("Control(AUIPC) = %+v, want ALUAdd+ImmU", c)
	}
}

func TestControlOpFPDispatch(t *testing.T) {
	d := Decode(uint32(OpcodeOpFP) | (f7FAdd << 25))
	c := Control(d)
	if c.FPALUOp != FPAdd || !c.FPRegWrite || c.RegWrite {
		t.Errorf("Control(FADD.S) = %+v, want FPAdd+FPRegWrite", c)
	}

	d = Decode(uint32(OpcodeOpFP) | (f7FCmp << 25))
	c = Control(d)
	if c.FPALUOp != FPEq || !c.RegWrite || c.FPRegWrite {
		t.Errorf("Control(FCMP.S) = %+v, want FPEq+RegWrite (integer dest)", c)
	}
}

func TestControlUnknownOpcodeIsZeroBundle(t *testing.T) {
	d := Decode(0) // opcode 0, unrecognized
	c := Control(d)
	if c.RegWrite || c.MemRead || c.MemWrite || c.Branch || c.Jump {
		t.Errorf("Control(unknown) = %+v, want all control flags clear", c)
	}
}
