package config

// DefaultConfig returns a Config with sensible defaults. API keys and agent
// identifiers have no defaults and must come from the file or environment.
func DefaultConfig() *Config {
	return &Config{
		Port:    8000,
		DataDir: ".callbot",
		Model:   "gpt-3.5-turbo",
	}
}
