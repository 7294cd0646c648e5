// Package main provides the benchboard CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/benchboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
