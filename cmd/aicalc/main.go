package main

import (
	"os"

	"github.com/bnema/aicalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
