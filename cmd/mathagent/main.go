package main

import (
	"os"

	"github.com/Swanand58/math-ai-agent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
