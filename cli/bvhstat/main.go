// Package main is the bvhstat command itself.
package main

import (
	"os"

	"go.viam.com/broadphase/cli"
	"go.viam.com/broadphase/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.Global().Error(err)
		os.Exit(1)
	}
}
