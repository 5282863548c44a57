package report

import (
	"fmt"
	"os"

	"github.com/dtnitsch/page-rescue/internal/app"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// ReportAction runs a single broken-page report and prints the stored record.
func ReportAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: page-rescue report <url>", 1)
	}

	env, err := app.Load(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	database, err := env.OpenDB()
	if err != nil {
		env.Logger.Error("failed to open database", "error", err)
		return cli.Exit(err.Error(), 2)
	}
	defer database.Close()

	rec, err := env.RescueService(database).Report(c.Context, c.Args().First())
	if err != nil {
		env.Logger.Error("report failed", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	out, err := yaml.Marshal(rec)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to marshal record: %v", err), 2)
	}
	_, _ = os.Stdout.Write(out)
	return nil
}
