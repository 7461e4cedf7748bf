package main

import (
	"os"

	"github.com/quantlab/riskd/cmd/riskd/commands"
)

// main is the entry point for the riskd CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/riskd [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
