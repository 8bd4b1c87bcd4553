package main

import (
	"os"

	"github.com/mmynk/chitfund/internal/cli"
	"github.com/mmynk/chitfund/pkg/logging"
)

func main() {
	logging.Setup("")
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
