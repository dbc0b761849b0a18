package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credvault/cmd/app/commands"
	"github.com/allisson/credvault/internal/app"
	"github.com/allisson/credvault/internal/config"
)

func getCommands() []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getVaultCommands()...)
	cmds = append(cmds, getPasswordCommands()...)
	return cmds
}

// runWithContainer loads and validates the configuration, then runs fn with a container that
// is shut down afterwards.
func runWithContainer(ctx context.Context, fn func(ctx context.Context, container *app.Container) error) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	container := app.NewContainer(cfg)
	defer commands.CloseContainer(container, container.Logger())

	return fn(ctx, container)
}
