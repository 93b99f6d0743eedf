package main

import (
	"os"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd(defaultOpener).Execute(); err != nil {
		os.Exit(1)
	}
}
