package vm

// Instruction format opcodes (low 7 bits of the instruction word).
const (
	OpcodeRType   = 0x33 // register-register ALU and MUL/DIV
	OpcodeIType   = 0x13 // register-immediate ALU
	OpcodeLoad    = 0x03 // LB/LH/LW/LBU/LHU
	OpcodeStore   = 0x23 // SB/SH/SW
	OpcodeBranch  = 0x63 // BEQ/BNE/BLT/BGE/BLTU/BGEU
	OpcodeLUI     = 0x37
	OpcodeAUIPC   = 0x17
	OpcodeJAL     = 0x6F
	OpcodeJALR    = 0x67
	OpcodeLoadFP  = 0x07 // FLW
	OpcodeStoreFP = 0x27 // FSW
	OpcodeOpFP    = 0x53 // FADD.S/FSUB.S/FMUL.S/... (funct7-dispatched)
	OpcodeSystem  = 0x73 // decoded only, never executed (ECALL/EBREAK out of scope)
)

// funct7 rows that distinguish the M extension and SUB/SRA from their
// ADD/SRL siblings under opcode 0x33/0x13.
const (
	Funct7Base = 0x00
	Funct7Alt  = 0x20 // SUB, SRA
	Funct7MDU  = 0x01 // MUL/MULH/MULHU/MULHSU/DIV/DIVU/REM/REMU
)

// funct3 rows for the integer ALU classes (shared by R-type and I-type).
const (
	Funct3ADD  = 0x0 // also SUB (funct7 distinguishes), also ADDI
	Funct3SLL  = 0x1
	Funct3SLT  = 0x2
	Funct3SLTU = 0x3
	Funct3XOR  = 0x4
	Funct3SRL  = 0x5 // also SRA (funct7 distinguishes)
	Funct3OR   = 0x6
	Funct3AND  = 0x7
)

// funct3 rows for the M extension under opcode 0x33/funct7=0x01.
const (
	Funct3MUL    = 0x0
	Funct3MULH   = 0x1
	Funct3MULHSU = 0x2
	Funct3MULHU  = 0x3
	Funct3DIV    = 0x4
	Funct3DIVU   = 0x5
	Funct3REM    = 0x6
	Funct3REMU   = 0x7
)

// funct3 rows for loads and stores.
const (
	Funct3Byte         = 0x0 // LB / SB
	Funct3Half         = 0x1 // LH / SH
	Funct3Word         = 0x2 // LW / SW
	Funct3ByteUnsigned = 0x4 // LBU
	Funct3HalfUnsigned = 0x5 // LHU
)

// funct3 rows for branches.
const (
	Funct3BEQ  = 0x0
	Funct3BNE  = 0x1
	Funct3BLT  = 0x4
	Funct3BGE  = 0x5
	Funct3BLTU = 0x6
	Funct3BGEU = 0x7
)

// Bit widths and masks used throughout the datapath.
const (
	WordBits    = 32
	SignBitPos  = 31
	SignBitMask = uint32(1) << SignBitPos
	ShiftMask   = 0x1F // barrel shifter amount is masked to 5 bits
	RegCount    = 32
)

// Default memory map, per the external-interfaces section: instruction
// memory starts at zero, data memory starts at 64 KiB and spans 1 KiB.
const (
	DefaultInstructionBase = 0x00000000
	DefaultDataBase        = 0x00010000
	DefaultDataSize        = 1024
)

const canonicalQNaN32 = uint32(0x7FC00000)

// smallestNormalFloat32 is 2^-126, the boundary below which a nonzero
// binary32 value is subnormal.
const smallestNormalFloat32 = 1.1754943508222875e-38
