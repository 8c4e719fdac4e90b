package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .callbot.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to callbot! Let's set up your agent.")
	fmt.Println()

	cfg := DefaultConfig()

	openaiPrompt := promptui.Prompt{
		Label: "OpenAI API key (for the chat assistant)",
		Mask:  '*',
	}
	openaiKey, err := openaiPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("openai key prompt: %w", err)
	}
	cfg.OpenAIAPIKey = openaiKey

	elevenPrompt := promptui.Prompt{
		Label: "ElevenLabs API key (for outbound calls, optional)",
		Mask:  '*',
	}
	elevenKey, err := elevenPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("elevenlabs key prompt: %w", err)
	}
	cfg.ElevenLabsAPIKey = elevenKey

	if elevenKey != "" {
		agentPrompt := promptui.Prompt{Label: "ElevenLabs agent ID"}
		agentID, err := agentPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("agent id prompt: %w", err)
		}
		cfg.ElevenLabsAgentID = agentID

		phonePrompt := promptui.Prompt{Label: "ElevenLabs phone number ID"}
		phoneID, err := phonePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("phone number id prompt: %w", err)
		}
		cfg.ElevenLabsPhoneNumberID = phoneID
	}

	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Save(".callbot.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Configuration saved to .callbot.yml")
	fmt.Println("Run `callbot serve` to start the server.")

	return cfg, nil
}
