package main

import (
	"os"

	"github.com/AreteDriver/agent-audit/internal/logger"
)

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
