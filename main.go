package main

import (
	"os"

	"borg-find/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
