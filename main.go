package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/page-rescue/internal/db"
	"github.com/dtnitsch/page-rescue/internal/evaluate"
	"github.com/dtnitsch/page-rescue/internal/report"
	"github.com/dtnitsch/page-rescue/internal/serve"
	"github.com/dtnitsch/page-rescue/pkg/evaluation"
	"github.com/dtnitsch/page-rescue/pkg/help"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "page-rescue",
		Usage: "recover broken pages from the Wayback Machine or an LLM, and score the reconstructions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to YAML config (optional)",
				EnvVars: []string{"PAGE_RESCUE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "log level: debug, info, warn, error",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "quickstart",
				Usage: "print a YAML quick start",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
			{
				Name:   "serve",
				Usage:  "run the HTTP service (POST /report404, GET /healthz, GET /metrics)",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "listen address, overrides server.addr (PORT env still wins)",
					},
				},
			},
			{
				Name:      "report",
				Usage:     "report one broken URL and print the stored record",
				ArgsUsage: "<url>",
				Action:    report.ReportAction,
			},
			{
				Name:   "evaluate",
				Usage:  "score stored reconstructions against their archived snapshots",
				Action: evaluate.EvaluateAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   evaluation.FormatText,
						Usage:   "output format: text, yaml, json",
					},
					&cli.IntFlag{
						Name:  "min-length",
						Usage: "minimum characters for both texts (default from config, 50)",
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "snapshot extraction mode: denylist or readability",
					},
				},
			},
			{
				Name:  "db",
				Usage: "inspect and import stored records",
				Subcommands: []*cli.Command{
					{
						Name:   "records",
						Usage:  "list stored records, newest first",
						Action: db.RecordsAction,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Value: 20,
								Usage: "maximum records to list (0 = all)",
							},
						},
					},
					{
						Name:      "show",
						Usage:     "print one record as YAML",
						ArgsUsage: "<id>",
						Action:    db.ShowAction,
					},
					{
						Name:      "import",
						Usage:     "import records from a YAML or JSON array",
						ArgsUsage: "<file>",
						Action:    db.ImportAction,
					},
				},
			},
		},
	}
}
