package main

import (
	"os"

	"github.com/crewbench/crewgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
