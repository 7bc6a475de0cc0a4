package vm

import "testing"

func TestDecodeFieldExtraction(t *testing.T) {
	// opcode=0x33 (R-type), rd=x1, rs1=x2, rs2=x3, funct3=0, funct7=0 -> ADD x1,x2,x3
	instr := uint32(OpcodeRType) | (1 << 7) | (2 << 15) | (3 << 20)
	d := Decode(instr)
	if d.Opcode != OpcodeRType {
		t.Errorf("Opcode = %#x, want %#x", d.Opcode, OpcodeRType)
	}
	if d.Rd != 1 || d.Rs1 != 2 || d.Rs2 != 3 {
		t.Errorf("fields = rd:%d rs1:%d rs2:%d, want 1,2,3", d.Rd, d.Rs1, d.Rs2)
	}
	if d.Name != "ADD" {
		t.Errorf("Name = %s, want ADD", d.Name)
	}
	if d.Type != TypeR {
		t.Errorf("Type = %v, want TypeR", d.Type)
	}
}

func TestDecodeSUBvsADDByFunct7(t *testing.T) {
	base := uint32(OpcodeRType)
	sub := base | (Funct7Alt << 25)
	if Decode(sub).Name != "SUB" {
		t.Errorf("funct7=Alt should decode as SUB, got %s", Decode(sub).Name)
	}
	if Decode(base).Name != "ADD" {
		t.Errorf("funct7=Base should decode as ADD, got %s", Decode(base).Name)
	}
}

func TestDecodeMDURow(t *testing.T) {
	instr := uint32(OpcodeRType) | (Funct7MDU << 25) | (Funct3DIV << 12)
	d := Decode(instr)
	if d.Name != "DIV" {
		t.Errorf("Name = %s, want DIV", d.Name)
	}
}

func TestDecodeAllOnesImmediates(t *testing.T) {
	d := Decode(0xFFFFFFFF)
	if d.Opcode != 0x7F {
		t.Errorf("Opcode = %#x, want 0x7F", d.Opcode)
	}
	if d.Rd != 0x1F || d.Rs1 != 0x1F || d.Rs2 != 0x1F || d.Funct3 != 0x7 || d.Funct7 != 0x7F {
		t.Errorf("fields = %+v, want all-ones", d)
	}
	if d.ImmI != 0xFFFFFFFF {
		t.Errorf("ImmI = %#x, want 0xFFFFFFFF (-1)", d.ImmI)
	}
	if d.ImmS != 0xFFFFFFFF {
		t.Errorf("ImmS = %#x, want 0xFFFFFFFF (-1)", d.ImmS)
	}
	if d.ImmU != 0xFFFFF000 {
		t.Errorf("ImmU = %#x, want 0xFFFFF000", d.ImmU)
	}
	if int32(d.ImmB) != -2 {
		t.Errorf("ImmB = %d, want -2", int32(d.ImmB))
	}
	if int32(d.ImmJ) != -2 {
		t.Errorf("ImmJ = %d, want -2", int32(d.ImmJ))
	}
}

func TestDecodeAllZerosIsUnknown(t *testing.T) {
	d := Decode(0)
	if d.Type != TypeUnknown {
		t.Errorf("Type = %v, want TypeUnknown", d.Type)
	}
	if d.Name != "UNKNOWN" {
		t.Errorf("Name = %s, want UNKNOWN", d.Name)
	}
}

func TestDecodeLoadStoreMnemonics(t *testing.T) {
	cases := []struct {
		opcode, funct3 uint32
		want           string
	}{
		{OpcodeLoad, Funct3Byte, "LB"},
		{OpcodeLoad, Funct3HalfUnsigned, "LHU"},
		{OpcodeStore, Funct3Word, "SW"},
	}
	for _, c := range cases {
		instr := c.opcode | (c.funct3 << 12)
		if got := Decode(instr).Name; got != c.want {
			t.Errorf("Decode(opcode=%#x,funct3=%#x) = %s, want %s", c.opcode, c.funct3, got, c.want)
		}
	}
}

func TestDecodeOpFPMnemonics(t *testing.T) {
	instr := uint32(OpcodeOpFP) | (f7FAdd << 25)
	if got := Decode(instr).Name; got != "FADD.S" {
		t.Errorf("Decode OP-FP FADD = %s, want FADD.S", got)
	}
}
