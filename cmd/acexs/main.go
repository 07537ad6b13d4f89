// Command acexs is a command line utility for inspecting ACE nuclear-data
// evaluation files and their XSDIR directory listings.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// main is separated from run and application to keep each piece testable on
// its own.
func main() {
	run(os.Args)
}

// run builds the app and executes it against args, logging and exiting
// non-zero on failure.
func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

// application defines the acexs command tree: decode, fingerprint, xsdir,
// and mirror.
func application() *cli.App {
	return &cli.App{
		Name:  "acexs",
		Usage: "inspect ACE nuclear-data tables and XSDIR directories",
		Commands: []*cli.Command{
			decodeCmd(),
			fingerprintCmd(),
			xsdirCmd(),
			mirrorCmd(),
		},
	}
}
