package main

import (
	"os"

	"github.com/hardwaylabs/conacct/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
