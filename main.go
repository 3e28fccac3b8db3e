package main

import (
	"os"

	"github.com/recall-cli/recall/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
