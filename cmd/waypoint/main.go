// Package main provides the Waypoint CLI.
package main

import (
	"os"

	"github.com/waypointhq/waypoint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
