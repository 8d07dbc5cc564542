// jstr converts and inspects UTF-8 and UTF-16 strings from the command line.
package main

import (
	"os"

	"github.com/spf13/afero"

	"github.com/rawbytedev/jstring/cmd/jstr/command"
)

func main() {
	root := command.GetRootCommand(afero.NewOsFs())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
