package config

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/agenticgokit/tales/internal/utils"
)

const header = `# tales configuration
# Values can be overridden with TALES_* environment variables or flags.

`

// Generator writes configuration files
type Generator struct{}

// NewGenerator creates a new config generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Encode writes cfg as TOML to w.
func (g *Generator) Encode(w io.Writer, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// GenerateConfig writes cfg to outputPath. An existing file is only replaced
// when force is set.
func (g *Generator) GenerateConfig(cfg Config, outputPath string, force bool) error {
	if utils.FileExists(outputPath) && !force {
		return utils.NewUserError(
			fmt.Sprintf("Config file %s already exists", outputPath),
			"Use --force to overwrite it",
			nil,
		)
	}

	var buf bytes.Buffer
	if err := g.Encode(&buf, cfg); err != nil {
		return err
	}
	if err := utils.WriteFile(outputPath, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Decode reads a TOML document written by Encode.
func Decode(data []byte) (Config, error) {
	cfg := Defaults()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, cfg.Validate()
}
