// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Flowerpass.
//
// Usage:
//
//	go run . [flags]
//	./flowerpass [flags]
//
// This launches the Flowerpass CLI. See --help for options.
package main

import (
	"log"
	"os"

	"github.com/xlsdg/flowerpass/ui/cli"
)

// main is the entrypoint for the Flowerpass CLI.
func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("flowerpass: %v", err)
		os.Exit(1)
	}
}
