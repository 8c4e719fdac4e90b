package config

// Config is the top-level call-bot configuration, corresponding to .callbot.yml.
type Config struct {
	Port    int    `yaml:"port" koanf:"port"`
	DataDir string `yaml:"data_dir" koanf:"data_dir"`

	// Chat assistant backend.
	Model        string `yaml:"model" koanf:"model"`
	OpenAIAPIKey string `yaml:"openai_api_key" koanf:"openai_api_key"`

	// ElevenLabs outbound-call agent.
	ElevenLabsAPIKey        string `yaml:"elevenlabs_api_key" koanf:"elevenlabs_api_key"`
	ElevenLabsAgentID       string `yaml:"elevenlabs_agent_id" koanf:"elevenlabs_agent_id"`
	ElevenLabsPhoneNumberID string `yaml:"elevenlabs_phone_number_id" koanf:"elevenlabs_phone_number_id"`

	AllowAllCORS bool `yaml:"allow_all_cors" koanf:"allow_all_cors"`
}
