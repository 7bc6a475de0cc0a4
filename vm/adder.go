package vm

// FullAdder computes one bit position of a ripple-carry adder: sum and
// carry-out for a, b and an incoming carry.
func FullAdder(a, b, cin int) (sum, cout int) {
	sum = (a ^ b ^ cin) & 1
	cout = (a&b | cin&(a^b)) & 1
	return
}

// RippleAdd chains width full adders from the least significant bit to the
// most significant, folding the carry forward. It returns the width-bit sum
// and the final carry-out.
func RippleAdd(a, b Bits, cin int) (sum Bits, cout int) {
	width := len(a)
	sum = make(Bits, width)
	carry := cin
	for i := width - 1; i >= 0; i-- {
		var s int
		s, carry = FullAdder(a[i], b[i], carry)
		sum[i] = s
	}
	return sum, carry
}

// ALUAddResult is the packaged {result, N, Z, C, V} an add or subtract
// produces.
type ALUAddResult struct {
	Result uint32
	Flags  NZCV
}

// Add computes a+b over 32-bit words and derives NZCV: C is the adder's
// carry-out, V is signed overflow (both operand sign bits agree but the
// result's disagrees with them).
func Add(a, b uint32) ALUAddResult {
	result := a + b
	return ALUAddResult{
		Result: result,
		Flags: NZCV{
			N: result&SignBitMask != 0,
			Z: result == 0,
			C: CalculateAddCarry(a, b, result),
			V: CalculateAddOverflow(a, b, result),
		},
	}
}

// Sub computes a-b over 32-bit words with native wrap-around subtraction,
// which equals a + ^b + 1 (inverted addend, carry-in of one). C follows the ARM/RISC-V "no borrow occurred" convention:
// set when a >= b unsigned. V is signed overflow for subtraction.
func Sub(a, b uint32) ALUAddResult {
	result := a - b
	return ALUAddResult{
		Result: result,
		Flags: NZCV{
			N: result&SignBitMask != 0,
			Z: result == 0,
			C: CalculateSubCarry(a, b),
			V: CalculateSubOverflow(a, b, result),
		},
	}
}

// CalculateAddCarry reports whether unsigned addition of a and b overflowed
// (carry out of bit 31).
func CalculateAddCarry(a, b, result uint32) bool {
	return result < a
}

// CalculateAddOverflow reports signed overflow: operands agree in sign but
// the result doesn't.
func CalculateAddOverflow(a, b, result uint32) bool {
	aSign := a & SignBitMask
	bSign := b & SignBitMask
	rSign := result & SignBitMask
	return aSign == bSign && aSign != rSign
}

// CalculateSubCarry reports "no borrow occurred": true when a >= b in
// unsigned arithmetic.
func CalculateSubCarry(a, b uint32) bool {
	return a >= b
}

// CalculateSubOverflow reports signed overflow for a-b: the minuend and
// subtrahend differ in sign and the result's sign differs from the
// minuend's.
func CalculateSubOverflow(a, b, result uint32) bool {
	aSign := a & SignBitMask
	bSign := b & SignBitMask
	rSign := result & SignBitMask
	return aSign != bSign && aSign != rSign
}

// ALU dispatches one of the control unit's integer ALUOps and returns the
// result with its flags. SLT/SLTU (set-less-than) are carried for
// completeness of the R/I-type ALU row even though the control table in
// the base spec only names ADD/SUB/AND/OR/XOR/LUI; their flags are N/Z only,
// C and V are left false since they're not meaningful for a comparison op.
func ALU(a, b uint32, op ALUOp) ALUAddResult {
	switch op {
	case ALUAdd:
		return Add(a, b)
	case ALUSub:
		return Sub(a, b)
	case ALUAnd:
		return logicalResult(a & b)
	case ALUOr:
		return logicalResult(a | b)
	case ALUXor:
		return logicalResult(a ^ b)
	case ALULUI:
		return logicalResult(b)
	case ALUSLT:
		if int32(a) < int32(b) {
			return logicalResult(1)
		}
		return logicalResult(0)
	case ALUSLTU:
		if a < b {
			return logicalResult(1)
		}
		return logicalResult(0)
	default:
		return logicalResult(0)
	}
}

func logicalResult(v uint32) ALUAddResult {
	return ALUAddResult{Result: v, Flags: NZCV{N: v&SignBitMask != 0, Z: v == 0}}
}
