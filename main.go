package main

import (
	"os"

	"github.com/sitewright/sitewright/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
