package main

import (
	"os"

	"github.com/m3rciful/pontusbot/app/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(cli.ExitError)
	}
}
