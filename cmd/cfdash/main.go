package main

import (
	"os"

	"github.com/imunderthetree/Codeforces-Dashboard/cmd/cfdash/commands"
)

// main is the entry point for the dashboard CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
