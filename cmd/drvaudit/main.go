package main

import (
	"os"

	"drvaudit/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
