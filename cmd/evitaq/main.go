// Command evitaq prints, explains and checks evitaDB query documents.
package main

import (
	"os"

	"github.com/evitadb/evitago/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
