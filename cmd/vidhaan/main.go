// Command vidhaan is the CLI entry point: ask questions, draft clauses, or
// run the API server.
package main

import (
	"os"

	"github.com/swarakshak/vidhaan/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
