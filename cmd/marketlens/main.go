package main

import (
	"os"

	"github.com/ivalero/marketlens/cmd/marketlens/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
