// Command constructio tags Latin grammatical constructions over a
// dependency-parsed corpus and serves the results on the terminal or
// over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "constructio",
		Usage: "rule-based construction tagging for dependency-parsed Latin",
		Commands: []*cli.Command{
			tagCommand(),
			reviewCommand(),
			docCommand(),
			sentenceCommand(),
			importCommand(),
			queryCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "constructio: %v\n", err)
		os.Exit(1)
	}
}
