// Package main is the entry point for the lectern CLI tool.
package main

import (
	"os"

	"github.com/lectern-reader/lectern/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
