package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsonlit
type Config struct {
	Package    string           `yaml:"package"`
	FuncName   string           `yaml:"func_name"`
	MaxDepth   int              `yaml:"max_depth"`
	Target     TargetConfig     `yaml:"target"`
	Formatting FormattingConfig `yaml:"formatting"`
	Output     OutputConfig     `yaml:"output"`
	Dev        DevConfig        `yaml:"dev"`
}

// TargetConfig names the container type the literal compiles into and how
// the emitted code calls its builder operations
type TargetConfig struct {
	// Type is the target type expression, e.g. "jsonval.Value".
	Type string `yaml:"type"`
	// Import is the import path of the package declaring Type, empty for a
	// type in the generated file's own package.
	Import string `yaml:"import"`
	// Convention selects the call form: "package" or "builder".
	Convention string `yaml:"convention"`
	// BuilderVar is the builder variable name for the builder convention.
	BuilderVar string `yaml:"builder_var"`
}

// FormattingConfig controls code formatting options
type FormattingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// OutputConfig controls output generation options
type OutputConfig struct {
	FileHeader string `yaml:"file_header"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Package:  "main",
		FuncName: "BuildValue",
		MaxDepth: 200,
		Target: TargetConfig{
			Type:       "jsonval.Value",
			Import:     "github.com/mcncl/jsonlit/jsonval",
			Convention: "package",
			BuilderVar: "b",
		},
		Formatting: FormattingConfig{
			Enabled: true,
		},
		Output: OutputConfig{},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonlit.yml", ".jsonlit.yaml", "jsonlit.yml", "jsonlit.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Overrides carries the CLI flag values together with the names of the flags
// the user gave explicitly. Only explicit flags take precedence over the
// config file, so a flag spelled out at its default value still wins.
type Overrides struct {
	Package    string
	FuncName   string
	Type       string
	TypeImport string
	Convention string
	BuilderVar string
	Set        map[string]bool
}

// LoadConfigWithCLI loads config with CLI argument precedence.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if o.Set["package"] {
		cfg.Package = o.Package
	}
	if o.Set["func"] {
		cfg.FuncName = o.FuncName
	}
	if o.Set["type"] {
		cfg.Target.Type = o.Type
		// A custom type with no explicit import lives in the output package.
		cfg.Target.Import = o.TypeImport
	} else if o.Set["type-import"] {
		cfg.Target.Import = o.TypeImport
	}
	if o.Set["convention"] {
		cfg.Target.Convention = o.Convention
	}
	if o.Set["builder-var"] {
		cfg.Target.BuilderVar = o.BuilderVar
	}

	return cfg, nil
}
