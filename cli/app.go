// Package cli contains the camorph command line interface.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	// register formats.
	_ "github.com/fbranschke/camorph/format/llff"
)

const (
	generalFlagLogLevel = "log-level"
	generalFlagLogFile  = "log-file"

	formatFlagFrom           = "from"
	formatFlagTo             = "to"
	formatFlagImages         = "images"
	formatFlagSkipDegenerate = "skip-degenerate"
	formatFlagValidate       = "validate"
	formatFlagConvention     = "convention"
)

// readFlags returns fresh copies since urfave flags keep per-run state.
func readFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  formatFlagImages,
			Usage: "directory whose sorted image files are paired with the cameras in file order",
		},
		&cli.BoolFlag{
			Name:  formatFlagSkipDegenerate,
			Usage: "skip cameras whose rotation cannot be decoded instead of failing",
		},
		&cli.BoolFlag{
			Name:  formatFlagValidate,
			Usage: "reject cameras with non-positive intrinsics or near > far",
		},
	}
}

var app = &cli.App{
	Name:            "camorph",
	Usage:           "convert camera poses between file formats",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  generalFlagLogLevel,
			Value: "info",
			Usage: "minimum level of log messages (debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:  generalFlagLogFile,
			Usage: "also write logs as json to `FILE`, rotated when it grows large",
		},
	},
	Before: setupLogger,
	Commands: []*cli.Command{
		{
			Name:   "formats",
			Usage:  "list the registered camera formats",
			Action: ListFormatsAction,
		},
		{
			Name:      "inspect",
			Usage:     "print the cameras stored in a file",
			ArgsUsage: "<file>",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:  formatFlagFrom,
					Value: "llff",
					Usage: "format of the input file",
				},
				&cli.StringFlag{
					Name:  formatFlagConvention,
					Usage: "print poses in the convention described by json `FILE` instead of the canonical one",
				},
			}, readFlags()...),
			Action: InspectAction,
		},
		{
			Name:      "convert",
			Usage:     "read cameras in one format and write them in another",
			ArgsUsage: "<input> <output>",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     formatFlagFrom,
					Required: true,
					Usage:    "format of the input file",
				},
				&cli.StringFlag{
					Name:     formatFlagTo,
					Required: true,
					Usage:    "format of the output file",
				},
			}, readFlags()...),
			Action: ConvertAction,
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
