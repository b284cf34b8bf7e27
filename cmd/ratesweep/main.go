package main

import (
	"os"

	"github.com/rpgo/marginal-rate-explorer/cmd/ratesweep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
