// Command schemac is the CLI entry point wrapping the schemac core compiler.
package main

import (
	"os"

	"github.com/relschema/schemac/cmd/schemac"
)

func main() {
	if err := schemac.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
