// Package main is the entry point for the unc CLI.
package main

import (
	"os"

	"github.com/incredibit/unc/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
