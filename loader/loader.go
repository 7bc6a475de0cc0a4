// Package loader reads and writes program images for the simulator: plain
// text files of one 8-hex-digit instruction word per line.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cwillis/rv32sim/vm"
)

// LoadHexFile reads instructions as 32-bit words, one per non-blank,
// non-comment line, each exactly 8 hex digits (optionally "0x"-prefixed),
// MSB first. "#" begins a line comment. An invalid line length or hex
// character is a load-time error identifying the line number.
func LoadHexFile(path string) ([]uint32, error) {
	f, err := os.Open(path) // #nosec G304 -- caller-supplied program image path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("loader: file not found: %s", path)
		}
		return nil, fmt.Errorf("loader: opening %s: %w", path, err)
	}
	defer f.Close()

	var words []uint32
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
			if line == "" {
				continue
			}
		}
		line = strings.TrimPrefix(strings.TrimPrefix(line, "0x"), "0X")
		if len(line) != 8 {
			return nil, fmt.Errorf("loader: %s:%d: expected 8 hex digits, got %d: %q", path, lineNum, len(line), line)
		}
		bits, err := vm.FromHexString(line, 32)
		if err != nil {
			return nil, fmt.Errorf("loader: %s:%d: invalid hex %q: %w", path, lineNum, line, err)
		}
		words = append(words, vm.ToUint32(bits))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}
	return words, nil
}

// SaveHexFile writes words back out in the same one-word-per-line, 8
// upper-case hex digit format LoadHexFile reads, so the two round-trip.
func SaveHexFile(path string, words []uint32) error {
	f, err := os.Create(path) // #nosec G304 -- caller-supplied output path
	if err != nil {
		return fmt.Errorf("loader: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, word := range words {
		if _, err := fmt.Fprintf(w, "%08X\n", word); err != nil {
			return fmt.Errorf("loader: writing %s: %w", path, err)
		}
	}
	return w.Flush()
}

// LoadProgramIntoCPU loads words into the CPU's instruction memory starting
// at startAddr and positions the PC there.
func LoadProgramIntoCPU(cpu *vm.CPU, words []uint32, startAddr uint32) error {
	if err := cpu.IMem.LoadProgram(words, startAddr); err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	cpu.PC = startAddr
	return nil
}
