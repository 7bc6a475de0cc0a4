// Package config loads and saves the simulator's run configuration: memory
// layout, cycle limits, and trace/display preferences, mirroring the
// platform-specific config path conventions and TOML encoding the rest of
// this codebase's tooling uses.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds everything a run of the simulator needs beyond the program
// image itself.
type Config struct {
	Memory struct {
		InstructionBase uint32 `toml:"instruction_base"`
		InstructionSize uint32 `toml:"instruction_size"`
		DataBase        uint32 `toml:"data_base"`
		DataSize        uint32 `toml:"data_size"`
	} `toml:"memory"`

	Execution struct {
		MaxCycles  uint64 `toml:"max_cycles"`
		EntryPoint uint32 `toml:"entry_point"`
	} `toml:"execution"`

	Trace struct {
		Enabled    bool   `toml:"enabled"`
		OutputFile string `toml:"output_file"`
		MaxEntries int    `toml:"max_entries"`
	} `toml:"trace"`

	Display struct {
		ColorOutput  bool   `toml:"color_output"`
		NumberFormat string `toml:"number_format"` // hex, dec
	} `toml:"display"`
}

// DefaultConfig returns the configuration a bare invocation runs with.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Memory.InstructionBase = 0x00000000
	cfg.Memory.InstructionSize = 1 << 20
	cfg.Memory.DataBase = 0x00010000
	cfg.Memory.DataSize = 1024

	cfg.Execution.MaxCycles = 1_000_000
	cfg.Execution.EntryPoint = 0

	cfg.Trace.Enabled = false
	cfg.Trace.OutputFile = "trace.log"
	cfg.Trace.MaxEntries = 100_000

	cfg.Display.ColorOutput = true
	cfg.Display.NumberFormat = "hex"

	return cfg
}

// GetConfigPath returns the platform-specific config file path, creating
// its parent directory if needed.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "rv32sim")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "rv32sim")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load reads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads configuration from the given path; a missing file yields
// DefaultConfig rather than an error, so a first run needs no config file.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes configuration to the given path, creating its parent
// directory if needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("config: creating directory %s: %w", dir, err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("config: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: encoding %s: %w", path, err)
	}

	return nil
}
