// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Mealdeck.
//
// Usage:
//
//	go run . [flags]
//	./mealdeck [flags]
//
// This launches the Mealdeck CLI. See --help for options.
package main

import (
	"log"
	"os"

	"github.com/mealdeck/mealdeck/internal/cli"
)

// main is the entrypoint for the Mealdeck CLI.
func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("Mealdeck CLI error: %v", err)
		os.Exit(1)
	}
}
