package main

import (
	"os"

	"github.com/rulekit-dev/rulekit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
