package evaluate

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/dtnitsch/page-rescue/internal/app"
	"github.com/dtnitsch/page-rescue/pkg/evaluation"
	"github.com/urfave/cli/v2"
)

// EvaluateAction scores every stored reconstruction against its snapshot and
// prints the averaged report.
func EvaluateAction(c *cli.Context) error {
	format := strings.ToLower(c.String("format"))
	switch format {
	case evaluation.FormatText, evaluation.FormatYAML, evaluation.FormatJSON:
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q (use text, yaml or json)", format), 1)
	}

	env, err := app.Load(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if c.IsSet("min-length") {
		env.Config.Evaluation.MinTextLength = c.Int("min-length")
	}
	if c.IsSet("mode") {
		env.Config.Evaluation.ExtractMode = strings.ToLower(c.String("mode"))
		if err := env.Config.Validate(); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}
	logger := env.Logger

	database, err := env.OpenDB()
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return cli.Exit(err.Error(), 2)
	}
	defer database.Close()

	evaluator, err := env.Evaluator(database)
	if err != nil {
		logger.Error("failed to build evaluator", "error", err)
		return cli.Exit(err.Error(), 1)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	summary, err := evaluator.Run(ctx)
	if err != nil {
		logger.Error("evaluation failed", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	if err := evaluation.Write(os.Stdout, summary, format); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	return nil
}
