package main

import (
	"os"

	"github.com/taxit-dev/taxit/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
