package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credvault/cmd/app/commands"
	"github.com/allisson/credvault/internal/app"
)

func getPasswordCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-password",
			Usage: "Generate secure password",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "length",
					Aliases: []string{"l"},
					Usage:   "Password length (prompted when omitted, defaults to PASSWORD_LENGTH)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return runWithContainer(ctx, func(ctx context.Context, container *app.Container) error {
					return commands.RunGeneratePassword(
						container.PasswordGenerator(),
						commands.DefaultIO(),
						int(cmd.Int("length")),
						container.Config().PasswordLength,
					)
				})
			},
		},
		{
			Name:  "hash-password",
			Usage: "Print a one-way Argon2id hash of a password",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return runWithContainer(ctx, func(ctx context.Context, container *app.Container) error {
					return commands.RunHashPassword(container.PasswordHasher(), commands.DefaultIO())
				})
			},
		},
		{
			Name:  "verify-password",
			Usage: "Check a password against an Argon2id hash",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "hash",
					Required: true,
					Usage:    "PHC-encoded hash produced by hash-password",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return runWithContainer(ctx, func(ctx context.Context, container *app.Container) error {
					return commands.RunVerifyPassword(container.PasswordHasher(), commands.DefaultIO(), cmd.String("hash"))
				})
			},
		},
	}
}
