package main

import (
	"os"

	"github.com/pdxmph/todos/internal/cli"
)

// version is set at build time
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
