// Package main is the camorph command itself.
package main

import (
	"os"

	"github.com/edaniels/golog"

	"github.com/fbranschke/camorph/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		golog.Global().Fatal(err)
	}
}
