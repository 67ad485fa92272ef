// Package config loads gptty's TOML configuration: the syntax theme,
// external editor override, API-key environment variable name, and the
// set of prompt personas a user can start a new thread under.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/keagud/gptty/internal/apperrors"
	"github.com/keagud/gptty/internal/chatmodel"
)

//go:embed default.toml
var defaultConfigTOML []byte

const defaultAPIKeyVar = "OPENAI_API_KEY"

// personaTOML is the on-disk shape of a persona entry; chatmodel.Prompt
// is the validated in-memory shape config.Load() produces from it.
type personaTOML struct {
	Label  string `toml:"label"`
	Prompt string `toml:"prompt"`
	Model  string `toml:"model"`
	Color  string `toml:"color"`
}

type fileConfig struct {
	SyntaxTheme string        `toml:"syntax_theme"`
	Editor      string        `toml:"editor"`
	APIKeyVar   string        `toml:"api_key_var"`
	Prompts     []personaTOML `toml:"prompts"`
}

// Config is gptty's loaded, validated configuration.
type Config struct {
	SyntaxTheme string
	Editor      string
	APIKeyVar   string
	Prompts     []chatmodel.Prompt
}

// Load reads the TOML file at path, creating it from the embedded
// default if it does not yet exist, and returns the validated Config.
// An invalid persona color fails load naming the offending persona and
// color.
func Load(path string) (*Config, error) {
	// A local .env underlays the real environment, so a checkout can
	// carry its own API key without exporting anything. Missing file is
	// the common case and not an error.
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.WriteFile(path, defaultConfigTOML, 0o644); err != nil {
			return nil, apperrors.Config("write default config", err)
		}
		raw = defaultConfigTOML
	} else if err != nil {
		return nil, apperrors.Config("read config file", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return nil, apperrors.Config("parse config TOML", err)
	}

	if fc.APIKeyVar == "" {
		fc.APIKeyVar = defaultAPIKeyVar
	}

	prompts := make([]chatmodel.Prompt, 0, len(fc.Prompts))
	for _, p := range fc.Prompts {
		color := p.Color
		if color == "" {
			color = "blue"
		}
		if !chatmodel.IsValidColor(color) {
			return nil, apperrors.Config(
				fmt.Sprintf("persona %q has invalid color %q", p.Label, color), nil)
		}

		model := p.Model
		if model == "" {
			model = string(chatmodel.ModelGPT35Turbo)
		}

		prompts = append(prompts, chatmodel.Prompt{
			Label:  p.Label,
			Prompt: p.Prompt,
			Model:  chatmodel.Model(model),
			Color:  color,
		})
	}
	if len(prompts) == 0 {
		prompts = []chatmodel.Prompt{chatmodel.DefaultPrompt()}
	}

	return &Config{
		SyntaxTheme: fc.SyntaxTheme,
		Editor:      fc.Editor,
		APIKeyVar:   fc.APIKeyVar,
		Prompts:     prompts,
	}, nil
}

// APIKey reads the configured API-key environment variable, aborting
// with a clear error if it is unset.
func (c *Config) APIKey() (string, error) {
	key := os.Getenv(c.APIKeyVar)
	if key == "" {
		return "", apperrors.Config(
			fmt.Sprintf("environment variable %s is not set", c.APIKeyVar), nil)
	}
	return key, nil
}

// FindPersona resolves label against the configured personas using the
// same case-insensitive, unique-prefix matching rule cmd/gptty applies
// to the --prompt flag: an exact case-insensitive match wins outright;
// otherwise exactly one case-insensitive prefix match must exist.
func (c *Config) FindPersona(label string) (chatmodel.Prompt, error) {
	for _, p := range c.Prompts {
		if p.MatchesLabel(label) {
			return p, nil
		}
	}

	var matches []chatmodel.Prompt
	for _, p := range c.Prompts {
		if p.HasLabelPrefix(label) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		all := make([]string, len(c.Prompts))
		for i, p := range c.Prompts {
			all[i] = p.Label
		}
		sort.Strings(all)
		return chatmodel.Prompt{}, apperrors.Config(
			fmt.Sprintf("unknown prompt %q: valid prompts are %v", label, all), nil)
	default:
		labels := make([]string, len(matches))
		for i, m := range matches {
			labels[i] = m.Label
		}
		return chatmodel.Prompt{}, apperrors.Config(
			fmt.Sprintf("prompt %q is ambiguous between %v", label, labels), nil)
	}
}
