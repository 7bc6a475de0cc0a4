package vm

// Decode splits a 32-bit instruction word into its fields and five
// immediate shapes. Field extraction mirrors the reference decoder's
// slice-and-concatenate shape directly (MSB-first bit list, sliced and
// reassembled exactly as it is there) rather than re-deriving the formulas
// from a hardware bit-numbering convention, so that the literal worked
// examples stay bit-exact.
func Decode(instr uint32) DecodedInstruction {
	bits := FromUint32(instr, WordBits)

	opcode := bits[25:32]
	rd := bits[20:25]
	rs1 := bits[12:17]
	rs2 := bits[7:12]
	funct3 := bits[17:20]
	funct7 := bits[0:7]

	immI := append(Bits{}, bits[20:32]...)

	immS := append(append(Bits{}, bits[0:7]...), bits[20:25]...)

	immB := append(Bits{}, bits[31])
	immB = append(immB, bits[25:31]...)
	immB = append(immB, bits[8:12]...)
	immB = append(immB, bits[7])
	immB = append(immB, 0)

	immU := append(append(Bits{}, bits[0:20]...), make(Bits, 12)...)

	immJ := append(Bits{}, bits[31])
	immJ = append(immJ, bits[21:31]...)
	immJ = append(immJ, bits[20])
	immJ = append(immJ, bits[12:20]...)
	immJ = append(immJ, 0)

	d := DecodedInstruction{
		Raw:    instr,
		Opcode: ToUint32(opcode),
		Rd:     ToUint32(rd),
		Rs1:    ToUint32(rs1),
		Rs2:    ToUint32(rs2),
		Funct3: ToUint32(funct3),
		Funct7: ToUint32(funct7),
		ImmI:   ToUint32(SignExtend(immI, 32)),
		ImmS:   ToUint32(SignExtend(immS, 32)),
		ImmB:   ToUint32(SignExtend(immB, 32)),
		ImmU:   ToUint32(immU),
		ImmJ:   ToUint32(SignExtend(immJ, 32)),
	}
	d.Type = classify(d.Opcode)
	d.Name = mnemonic(d)
	return d
}

func classify(opcode uint32) InstructionType {
	switch opcode {
	case OpcodeRType, OpcodeOpFP:
		return TypeR
	case OpcodeLoad, OpcodeIType, OpcodeJALR, OpcodeLoadFP:
		return TypeI
	case OpcodeStore, OpcodeStoreFP:
		return TypeS
	case OpcodeBranch:
		return TypeB
	case OpcodeLUI, OpcodeAUIPC:
		return TypeU
	case OpcodeJAL:
		return TypeJ
	default:
		return TypeUnknown
	}
}

// mnemonic names the decoded instruction via (opcode, funct3, funct7),
// returning "UNKNOWN" for anything the decode table doesn't name — the
// decoder classifies unrecognized encodings rather than silently treating
// them as something else.
func mnemonic(d DecodedInstruction) string {
	switch d.Opcode {
	case OpcodeRType:
		switch d.Funct7 {
		case Funct7MDU:
			switch d.Funct3 {
			case Funct3MUL:
				return "MUL"
			case Funct3MULH:
				return "MULH"
			case Funct3MULHSU:
				return "MULHSU"
			case Funct3MULHU:
				return "MULHU"
			case Funct3DIV:
				return "DIV"
			case Funct3DIVU:
				return "DIVU"
			case Funct3REM:
				return "REM"
			case Funct3REMU:
				return "REMU"
			}
		default:
			switch d.Funct3 {
			case Funct3ADD:
				if d.Funct7 == Funct7Alt {
					return "SUB"
				}
				return "ADD"
			case Funct3AND:
				return "AND"
			case Funct3OR:
				return "OR"
			case Funct3XOR:
				return "XOR"
			case Funct3SLL:
				return "SLL"
			case Funct3SLT:
				return "SLT"
			case Funct3SLTU:
				return "SLTU"
			case Funct3SRL:
				if d.Funct7 == Funct7Alt {
					return "SRA"
				}
				return "SRL"
			}
		}
	case OpcodeIType:
		switch d.Funct3 {
		case Funct3ADD:
			return "ADDI"
		case Funct3AND:
			return "ANDI"
		case Funct3OR:
			return "ORI"
		case Funct3XOR:
			return "XORI"
		case Funct3SLT:
			return "SLTI"
		case Funct3SLTU:
			return "SLTIU"
		case Funct3SLL:
			return "SLLI"
		case Funct3SRL:
			if d.Funct7 == Funct7Alt {
				return "SRAI"
			}
			return "SRLI"
		}
	case OpcodeLoad:
		switch d.Funct3 {
		case Funct3Byte:
			return "LB"
		case Funct3Half:
			return "LH"
		case Funct3Word:
			return "LW"
		case Funct3ByteUnsigned:
			return "LBU"
		case Funct3HalfUnsigned:
			return "LHU"
		}
	case OpcodeStore:
		switch d.Funct3 {
		case Funct3Byte:
			return "SB"
		case Funct3Half:
			return "SH"
		case Funct3Word:
			return "SW"
		}
	case OpcodeBranch:
		switch d.Funct3 {
		case Funct3BEQ:
			return "BEQ"
		case Funct3BNE:
			return "BNE"
		case Funct3BLT:
			return "BLT"
		case Funct3BGE:
			return "BGE"
		case Funct3BLTU:
			return "BLTU"
		case Funct3BGEU:
			return "BGEU"
		}
	case OpcodeLUI:
		return "LUI"
	case OpcodeAUIPC:
		return "AUIPC"
	case OpcodeJAL:
		return "JAL"
	case OpcodeJALR:
		return "JALR"
	case OpcodeLoadFP:
		return "FLW"
	case OpcodeStoreFP:
		return "FSW"
	case OpcodeOpFP:
		return fpMnemonic(d.Funct7, d.Rs2)
	case OpcodeSystem:
		return "SYSTEM"
	}
	return "UNKNOWN"
}

// OP-FP funct7 rows (RV32F register-register encoding).
const (
	f7FAdd    = 0x00
	f7FSub    = 0x04
	f7FMul    = 0x08
	f7FDiv    = 0x0C
	f7FSqrt   = 0x2C
	f7FSgnj   = 0x10 // funct3 selects J/JN/JX
	f7FMinMax = 0x14 // funct3 selects MIN/MAX
	f7FCmp    = 0x50 // funct3 selects LE/LT/EQ
	f7FCvtWS  = 0x60 // rs2 selects W/WU
	f7FCvtSW  = 0x68 // rs2 selects W/WU
	f7FMvXW   = 0x70 // also FCLASS.S (funct3 selects)
	f7FMvWX   = 0x78
)

func fpMnemonic(funct7, rs2 uint32) string {
	switch funct7 {
	case f7FAdd:
		return "FADD.S"
	case f7FSub:
		return "FSUB.S"
	case f7FMul:
		return "FMUL.S"
	case f7FDiv:
		return "FDIV.S"
	case f7FSqrt:
		return "FSQRT.S"
	case f7FSgnj:
		return "FSGNJ.S"
	case f7FMinMax:
		return "FMINMAX.S"
	case f7FCmp:
		return "FCMP.S"
	case f7FCvtWS:
		if rs2 == 1 {
			return "FCVT.WU.S"
		}
		return "FCVT.W.S"
	case f7FCvtSW:
		if rs2 == 1 {
			return "FCVT.S.WU"
		}
		return "FCVT.S.W"
	case f7FMvXW:
		return "FMV.X.W/FCLASS.S"
	case f7FMvWX:
		return "FMV.W.X"
	default:
		return "UNKNOWN"
	}
}
