package vm

// AsInt32 reinterprets a uint32 register value as its two's-complement
// signed equivalent, for display purposes — the register file itself
// always holds unsigned bits.
func AsInt32(v uint32) int32 {
	//nolint:gosec // G115: intentional bit-pattern-preserving reinterpretation
	return int32(v)
}
