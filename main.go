// Package main is the entry point for the zoomctl command-line tool.
package main

import (
	"os"

	"github.com/Norgate-AV/zoomctl/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
