package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nahcub/call-bot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize call-bot configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure API credentials and generates a .callbot.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
