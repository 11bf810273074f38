package main

import (
	"os"
	_ "time/tzdata"

	"github.com/avc/pos-pricing/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
