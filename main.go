package main

import (
	"os"

	"github.com/catpaladin/inkwell/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
