package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/adrenoasm/a2xx/ir"
)

// Config represents the assembler's configuration
type Config struct {
	// Arena settings
	Arena struct {
		HeapSize int `toml:"heap_size"` // bump-allocator capacity in bytes
	} `toml:"arena"`

	// Limits settings: declarative capacity caps. The hard per-field bit
	// -width ceilings (register number ≤ 0x3F, ALLOC size ≤ 0xFFF, etc.)
	// are enforced by the ir package regardless of these values.
	Limits struct {
		MaxAttributes             int `toml:"max_attributes"`
		MaxConstants              int `toml:"max_constants"`
		MaxSamplers               int `toml:"max_samplers"`
		MaxUniforms               int `toml:"max_uniforms"`
		MaxVaryings               int `toml:"max_varyings"`
		MaxClauses                int `toml:"max_clauses"`
		MaxInstructionsPerClause  int `toml:"max_instructions_per_clause"`
		MaxOperandsPerInstruction int `toml:"max_operands_per_instruction"`
	} `toml:"limits"`

	// API settings
	API struct {
		Port            int  `toml:"port"`
		EnableWebSocket bool `toml:"enable_websocket"`
	} `toml:"api"`

	// Display settings
	Display struct {
		NumberFormat string `toml:"number_format"` // hex, dec
	} `toml:"display"`
}

// DefaultConfig returns a configuration with the reference values: enough
// arena space for a handful of typical shaders, the §3 capacity caps, and a
// local-only API server on the conventional port.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Arena.HeapSize = 65536

	cfg.Limits.MaxAttributes = 64
	cfg.Limits.MaxConstants = 64
	cfg.Limits.MaxSamplers = 64
	cfg.Limits.MaxUniforms = 64
	cfg.Limits.MaxVaryings = 64
	cfg.Limits.MaxClauses = 64
	cfg.Limits.MaxInstructionsPerClause = 6
	cfg.Limits.MaxOperandsPerInstruction = 5

	cfg.API.Port = 8080
	cfg.API.EnableWebSocket = true

	cfg.Display.NumberFormat = "hex"

	return cfg
}

// GetConfigPath returns the platform-specific config file path
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "shaderasm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "shaderasm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from path. An empty path or a missing file both
// yield DefaultConfig(), matching spec.md's "absent file" external interface.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes c to path in TOML form.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("config: failed to create directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- caller-provided config path
	if err != nil {
		return fmt.Errorf("config: failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: failed to encode: %w", err)
	}

	return nil
}

// ToLimits converts the declarative capacity section into an ir.Limits
// value consumed by ir.NewShader.
func (c *Config) ToLimits() ir.Limits {
	return ir.Limits{
		MaxAttributes:             c.Limits.MaxAttributes,
		MaxConstants:              c.Limits.MaxConstants,
		MaxSamplers:               c.Limits.MaxSamplers,
		MaxUniforms:               c.Limits.MaxUniforms,
		MaxVaryings:               c.Limits.MaxVaryings,
		MaxClauses:                c.Limits.MaxClauses,
		MaxInstructionsPerClause:  c.Limits.MaxInstructionsPerClause,
		MaxOperandsPerInstruction: c.Limits.MaxOperandsPerInstruction,
		ArenaBytes:                c.Arena.HeapSize,
	}
}
