package main

import (
	"os"

	"github.com/Backland-Labs/dredd-runner/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
