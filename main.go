package main

import (
	"os"

	"openhandsctl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
