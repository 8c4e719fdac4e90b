package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CALLBOT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: CALLBOT_OPENAI_API_KEY -> openai_api_key, etc.
	if err := k.Load(env.Provider("CALLBOT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CALLBOT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	return nil
}

// ValidateForCalls checks the credentials needed to actually place calls.
// The chat surface can run without them.
func (c *Config) ValidateForCalls() error {
	if c.ElevenLabsAPIKey == "" {
		return fmt.Errorf("elevenlabs_api_key is required to place calls")
	}
	if c.ElevenLabsAgentID == "" {
		return fmt.Errorf("elevenlabs_agent_id is required to place calls")
	}
	if c.ElevenLabsPhoneNumberID == "" {
		return fmt.Errorf("elevenlabs_phone_number_id is required to place calls")
	}
	return nil
}
