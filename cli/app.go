// Package cli contains the bvhstat command line tool, which builds synthetic scenes and reports
// how well the tree is balanced and how fast it answers queries.
package cli

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"
)

const (
	debugFlag    = "debug"
	logLevelFlag = "log-level"

	buildFlagConfig    = "config"
	buildFlagLeaves    = "leaves"
	buildFlagClusters  = "clusters"
	buildFlagSpread    = "spread"
	buildFlagMargin    = "margin"
	buildFlagTraversal = "traversal"
	buildFlagSeed      = "seed"
	buildFlagRays      = "rays"
	buildFlagChurn     = "churn"
)

var app = &cli.App{
	Name:            "bvhstat",
	Usage:           "build bounding volume hierarchies over synthetic scenes and report on them",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.StringFlag{
			Name:  logLevelFlag,
			Value: "info",
			Usage: "minimum log `LEVEL`, one of debug, info, warn or error",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "build",
			Usage:     "insert a random scene, churn it, cast rays and print tree statistics",
			UsageText: "bvhstat build [options]",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:  buildFlagConfig,
					Usage: "load tree attributes from a JSON `FILE`",
				},
				&cli.IntFlag{
					Name:  buildFlagLeaves,
					Value: 1000,
					Usage: "number of shapes to insert",
				},
				&cli.IntFlag{
					Name:  buildFlagClusters,
					Value: 4,
					Usage: "number of clusters the shapes are grouped in",
				},
				&cli.Float64Flag{
					Name:  buildFlagSpread,
					Value: 20,
					Usage: "radius of each cluster",
				},
				&cli.Float64Flag{
					Name:  buildFlagMargin,
					Usage: "bounds expansion margin, overrides the config file",
				},
				&cli.StringFlag{
					Name:  buildFlagTraversal,
					Usage: "ray traversal, grandchildren or per_node, overrides the config file",
				},
				&cli.Int64Flag{
					Name:  buildFlagSeed,
					Value: 1,
					Usage: "random seed",
				},
				&cli.IntFlag{
					Name:  buildFlagRays,
					Value: 1000,
					Usage: "number of random rays to cast",
				},
				&cli.IntFlag{
					Name:  buildFlagChurn,
					Usage: "number of remove and reinsert rounds to run before measuring",
				},
			},
			Action: BuildAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}

func printf(w io.Writer, format string, a ...interface{}) {
	_, err := fmt.Fprintf(w, format+"\n", a...)
	goutils.UncheckedError(err)
}

func warningf(w io.Writer, format string, a ...interface{}) {
	printf(w, "Warning: "+format, a...)
}
