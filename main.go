package main

import (
	"os"

	"dropdf/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
