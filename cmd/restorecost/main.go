package main

import (
	"fmt"
	"os"

	"github.com/rshade/restorecost/internal/commands"
)

// Build info, injected by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := commands.Execute(version, commit, date); err != nil {
		fmt.Fprintf(os.Stderr, "restorecost: %v\n", err)
		os.Exit(1)
	}
}
