// Command splitctl splits and formats amounts from the terminal.
package main

import (
	"os"

	"github.com/auburus/expense-splitter/internal/cli"
	"github.com/auburus/expense-splitter/internal/config"
)

func main() {
	cli.LoadEnvFile()
	cfg := config.Load()
	cli.SetupLogger(cfg, os.Stderr)

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
