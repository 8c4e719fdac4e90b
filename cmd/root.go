package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "callbot",
	Short: "Chat assistant that collects call details and places phone calls",
	Long: `Call Bot chats with users to collect the details of a phone call they
want made (venue, time, party size, callback number), extracts those
fields from each message, and hands the completed order to an
ElevenLabs conversational agent that dials the business.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".callbot.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
