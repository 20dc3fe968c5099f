// Package main is the entry point for ahtracker.
package main

import (
	"os"

	"github.com/wowecon/ahtracker/cmd/ahtracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
