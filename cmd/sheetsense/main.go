package main

import (
	"fmt"
	"os"

	"github.com/voracio/sheetsense/internal/interfaces/cli"
)

// Set at link time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := cli.NewRootCmd(version, commit).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
