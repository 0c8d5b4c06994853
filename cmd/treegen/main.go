// Package main is the entry point for the treegen CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/treegen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
