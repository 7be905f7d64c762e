// Package main is the entry point for the potcost CLI.
package main

import (
	"os"

	"pottery-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
