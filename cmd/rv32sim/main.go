// Command rv32sim loads a hex program image, runs it to completion against
// a single-cycle RV32I/M/F simulator, and reports the final register and
// memory state.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwillis/rv32sim/internal/config"
	"github.com/cwillis/rv32sim/internal/trace"
	"github.com/cwillis/rv32sim/loader"
	"github.com/cwillis/rv32sim/vm"
)

// version is set at build time via -ldflags; it defaults to a development
// marker so a plain build still reports something.
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "rv32sim",
		Short: "Single-cycle simulator for RV32I/M/F programs",
	}

	rootCmd.AddCommand(newRunCmd(), newRegsCmd(), newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the simulator version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version)
			return nil
		},
	}
}

// sharedRunFlags are accepted by both run and regs, since both need to build
// and execute a CPU before reporting a different view of the result.
type sharedRunFlags struct {
	configPath string
	maxCycles  uint64
	entry      uint32
	traceOut   string
	inspect    bool
}

func addSharedRunFlags(cmd *cobra.Command, f *sharedRunFlags) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to a TOML config file (default: platform config path)")
	cmd.Flags().Uint64Var(&f.maxCycles, "max-cycles", 0, "Override the configured cycle limit (0 = use config)")
	cmd.Flags().Uint32Var(&f.entry, "entry", 0, "Override the configured entry address")
	cmd.Flags().StringVar(&f.traceOut, "trace", "", "Write a per-cycle trace log to this path")
	cmd.Flags().BoolVar(&f.inspect, "inspect", false, "Open an interactive post-run trace inspector")
}

func buildCPU(f *sharedRunFlags, path string) (*vm.CPU, *config.Config, *trace.Recorder, error) {
	var cfg *config.Config
	var err error
	if f.configPath != "" {
		cfg, err = config.LoadFrom(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, nil, err
	}

	words, err := loader.LoadHexFile(path)
	if err != nil {
		return nil, nil, nil, err
	}

	imem := vm.NewMemory(cfg.Memory.InstructionBase, cfg.Memory.InstructionSize)
	dmem := vm.NewMemory(cfg.Memory.DataBase, cfg.Memory.DataSize)
	cpu := vm.NewCPU(imem, dmem)

	entry := cfg.Execution.EntryPoint
	if f.entry != 0 {
		entry = f.entry
	}
	if err := loader.LoadProgramIntoCPU(cpu, words, entry); err != nil {
		return nil, nil, nil, err
	}
	cpu.Reset(entry)

	var rec *trace.Recorder
	if f.traceOut != "" || f.inspect || cfg.Trace.Enabled {
		rec = trace.NewRecorder(cfg.Trace.MaxEntries)
		cpu.OnStep = rec.OnStep
	}

	return cpu, cfg, rec, nil
}

func newRunCmd() *cobra.Command {
	flags := &sharedRunFlags{}
	var verbose bool
	cmd := &cobra.Command{
		Use:   "run [program.hex]",
		Short: "Run a hex program image to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, cfg, rec, err := buildCPU(flags, args[0])
			if err != nil {
				return err
			}

			if verbose {
				prev := cpu.OnStep
				cpu.OnStep = func(st vm.StepTrace) {
					fmt.Printf("Cycle %d: PC = 0x%08X\n", st.Cycle, st.PC)
					if prev != nil {
						prev(st)
					}
				}
			}

			maxCycles := cfg.Execution.MaxCycles
			if flags.maxCycles != 0 {
				maxCycles = flags.maxCycles
			}

			result := cpu.Run(maxCycles)

			for _, w := range cpu.Warnings {
				fmt.Fprintln(os.Stderr, "warning:", w)
			}

			if flags.inspect && rec != nil {
				if err := trace.NewInspector(rec).Run(); err != nil {
					return err
				}
			} else {
				intRegs := cpu.Regs.Snapshot()
				for i, v := range intRegs {
					if v == 0 {
						continue
					}
					fmt.Printf("x%d: 0x%08X (%d)\n", i, v, vm.AsInt32(v))
				}
				for _, addr := range cpu.DMem.PopulatedWords() {
					word, _ := cpu.DMem.ReadWord(addr)
					fmt.Printf("0x%08X: 0x%08X\n", addr, word)
				}
			}

			if !result.Halted {
				fmt.Fprintf(os.Stderr, "warning: run stopped at the cycle cap without halting (PC = 0x%08X)\n", result.FinalPC)
			}

			if flags.traceOut != "" && rec != nil {
				if err := rec.WriteLog(flags.traceOut); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addSharedRunFlags(cmd, flags)
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Print a Cycle N: PC = 0xADDR line for every executed cycle")
	return cmd
}

func newRegsCmd() *cobra.Command {
	flags := &sharedRunFlags{}
	cmd := &cobra.Command{
		Use:   "regs [program.hex]",
		Short: "Run a hex program image and dump the final register file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, cfg, _, err := buildCPU(flags, args[0])
			if err != nil {
				return err
			}

			maxCycles := cfg.Execution.MaxCycles
			if flags.maxCycles != 0 {
				maxCycles = flags.maxCycles
			}
			cpu.Run(maxCycles)

			intRegs := cpu.Regs.Snapshot()
			for i, v := range intRegs {
				fmt.Printf("x%-2d = 0x%08X (%d)\n", i, v, vm.AsInt32(v))
			}
			fpRegs := cpu.FRegs.Snapshot()
			for i, v := range fpRegs {
				fmt.Printf("f%-2d = 0x%08X\n", i, v)
			}
			fmt.Printf("pc  = 0x%08X\n", cpu.PC)
			return nil
		},
	}
	addSharedRunFlags(cmd, flags)
	return cmd
}
