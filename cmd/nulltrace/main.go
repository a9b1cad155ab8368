package main

import (
	"os"

	"nulltrace/cmd/nulltrace/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
