package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/page-rescue/internal/app"
	"github.com/urfave/cli/v2"
)

func ServeAction(c *cli.Context) error {
	env, err := app.Load(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger := env.Logger

	database, err := env.OpenDB()
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return cli.Exit(err.Error(), 2)
	}
	defer database.Close()

	addr := env.Config.Server.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}
	addr = ResolveAddr(addr, os.Getenv("PORT"))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := NewMux(env.RescueService(database), logger)
	if err := Run(ctx, addr, mux, logger); err != nil {
		logger.Error("server failed", "error", err)
		return cli.Exit(err.Error(), 2)
	}
	return nil
}
