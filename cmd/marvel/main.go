package main

import (
	"os"

	"github.com/bnema/marvel-dashboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
