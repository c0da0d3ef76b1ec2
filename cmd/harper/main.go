// Package main provides the harper command-line grammar checker.
package main

import (
	"os"

	"github.com/lukasmwerner/harper/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
