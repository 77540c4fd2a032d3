package main

import (
	"os"

	"github.com/wonny/sugup/cmd/sugup/commands"
)

// main is the entry point for the sugup CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/sugup [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
