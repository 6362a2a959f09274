package main

import (
	"os"

	"github.com/Makepad-fr/skycount/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
