package vm

import "testing"

func TestMulLowBitsIndependentOfSign(t *testing.T) {
	if got := Mul(0xFFFFFFFF, 2); got != 0xFFFFFFFE {
		t.Errorf("Mul(-1,2) low = %#x, want 0xFFFFFFFE", got)
	}
}

func TestMulHSignedVsUnsigned(t *testing.T) {
	// -1 * -1 signed = 1 (high = 0); as unsigned 0xFFFFFFFF * 0xFFFFFFFF
	// has a very different high half.
	signed := MulSigned(0xFFFFFFFF, 0xFFFFFFFF)
	if signed.High != 0 {
		t.Errorf("MULH(-1,-1).High = %#x, want 0", signed.High)
	}
	unsigned := MulUnsigned(0xFFFFFFFF, 0xFFFFFFFF)
	if unsigned.High != 0xFFFFFFFE {
		t.Errorf("MULHU(-1,-1).High = %#x, want 0xFFFFFFFE", unsigned.High)
	}
}

func TestDivSignedByZero(t *testing.T) {
	r := DivSigned(42, 0)
	if r.Quotient != 0xFFFFFFFF || r.Remainder != 42 {
		t.Errorf("DIV by zero = %+v, want quotient=all-ones, remainder=dividend", r)
	}
}

func TestDivUnsignedByZero(t *testing.T) {
	r := DivUnsigned(42, 0)
	if r.Quotient != 0xFFFFFFFF || r.Remainder != 42 {
		t.Errorf("DIVU by zero = %+v, want quotient=all-ones, remainder=dividend", r)
	}
}

func TestDivSignedOverflow(t *testing.T) {
	r := DivSigned(0x80000000, 0xFFFFFFFF) // INT_MIN / -1
	if r.Quotient != 0x80000000 || r.Remainder != 0 || !r.Overflow {
		t.Errorf("DIV INT_MIN/-1 = %+v, want quotient=INT_MIN, remainder=0, overflow=true", r)
	}
}

func TestRemSignedKeepsDividendSign(t *testing.T) {
	got := RemSigned(0xFFFFFFF9, 2) // -7
	if int32(got) != -1 {
		t.Errorf("REM(-7,2) = %d, want -1", int32(got))
	}
}

func TestRemUnsigned(t *testing.T) {
	if got := RemUnsigned(7, 2); got != 1 {
		t.Errorf("REMU(7,2) = %d, want 1", got)
	}
}

func TestMulSignedKnownOperands(t *testing.T) {
	signed := MulSigned(0x12345678, 0xFEDCBA87)
	if signed.Low != 0xFF8CC948 || signed.High != 0xFFEB4990 {
		t.Errorf("MULH(0x12345678,0xFEDCBA87) = {Low:%#x High:%#x}, want {0xFF8CC948 0xFFEB4990}", signed.Low, signed.High)
	}
	if got := Mul(0x12345678, 0xFEDCBA87); got != 0xFF8CC948 {
		t.Errorf("MUL(0x12345678,0xFEDCBA87) = %#x, want 0xFF8CC948", got)
	}
}

func TestDivSignedTruncatesTowardZero(t *testing.T) {
	r := DivSigned(0xFFFFFFF9, 3) // -7
	if r.Quotient != 0xFFFFFFFE || r.Remainder != 0xFFFFFFFF {
		t.Errorf("DIV(-7,3) = %+v, want quotient=0xFFFFFFFE, remainder=0xFFFFFFFF", r)
	}
}

func TestDivUnsignedByZeroIsAllOnes(t *testing.T) {
	r := DivUnsigned(123, 0)
	if r.Quotient != 0xFFFFFFFF {
		t.Errorf("DIVU(123,0) = %+v, want quotient=0xFFFFFFFF", r)
	}
}

func TestMDUDispatch(t *testing.T) {
	if got := MDU(6, 7, MDUMul); got != 42 {
		t.Errorf("MDU MUL(6,7) = %d, want 42", got)
	}
	if got := MDU(10, 3, MDUDivU); got != 3 {
		t.Errorf("MDU DIVU(10,3) = %d, want 3", got)
	}
}
