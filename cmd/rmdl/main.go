// Package main is the entry point for the rmdl CLI tool.
package main

import (
	"os"

	"github.com/remodelcli/remodel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
