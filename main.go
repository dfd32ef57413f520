package main

import (
	"fmt"
	"os"

	"github.com/dmaier/csvjsoncheck/internal/validate"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "csvjsoncheck",
		Usage:     "validate that a CSV column contains well-formed JSON",
		UsageText: "csvjsoncheck [options] <csv_file> <field_name>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "suppress operational logging (errors only)",
			},
			&cli.StringFlag{
				Name:  "summary-out",
				Usage: "write a YAML run summary to `PATH`",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "do not record the run in the history database",
			},
		},
		Action: validate.ValidateAction,
		Commands: []*cli.Command{
			{
				Name:      "history",
				Usage:     "list recorded runs, or show one run by ID",
				UsageText: "csvjsoncheck history [run_id]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum number of runs to list",
					},
				},
				Action: validate.HistoryAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
