// Package main provides the CLI for the docbundle reproduction bundler.
package main

import (
	"os"

	"github.com/leapstack-labs/docbundle/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
