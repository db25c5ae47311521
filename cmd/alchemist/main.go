// Package main is the alchemist command-line entry point.
package main

import (
	"os"

	"github.com/leapstack-labs/alchemist/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
