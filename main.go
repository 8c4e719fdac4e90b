package main

import (
	"os"

	"github.com/nahcub/call-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
