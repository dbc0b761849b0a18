package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credvault/cmd/app/commands"
	"github.com/allisson/credvault/internal/app"
)

func getVaultCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "setup",
			Usage: "Interactive credential setup",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "method",
					Aliases: []string{"m"},
					Usage:   "Where to store the credentials: env, file or both (prompted when omitted)",
				},
				&cli.StringFlag{
					Name:    "email",
					Aliases: []string{"e"},
					Usage:   "Test account email (prompted when omitted)",
				},
				&cli.StringFlag{
					Name:    "file",
					Aliases: []string{"f"},
					Usage:   "Encrypted credentials file (defaults to CREDENTIALS_FILE)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return runWithContainer(ctx, func(ctx context.Context, container *app.Container) error {
					cfg := container.Config()
					vault, err := container.VaultUseCase()
					if err != nil {
						return err
					}

					return commands.RunSetup(
						ctx,
						vault,
						container.KMSService(),
						container.Logger(),
						commands.DefaultIO(),
						commands.SetupOptions{
							Method:          cmd.String("method"),
							Email:           cmd.String("email"),
							CredentialsFile: stringOr(cmd.String("file"), cfg.CredentialsFile),
							EnvFile:         cfg.EnvFile,
							IgnoreFile:      cfg.IgnoreFile,
							KMSKeyURI:       cfg.KMSKeyURI,
						},
					)
				})
			},
		},
		{
			Name:  "view",
			Usage: "View encrypted credentials",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "file",
					Aliases: []string{"f"},
					Usage:   "Encrypted credentials file (defaults to CREDENTIALS_FILE)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return runWithContainer(ctx, func(ctx context.Context, container *app.Container) error {
					vault, err := container.VaultUseCase()
					if err != nil {
						return err
					}

					return commands.RunView(
						ctx,
						vault,
						container.Logger(),
						commands.DefaultIO(),
						stringOr(cmd.String("file"), container.Config().CredentialsFile),
						commands.DefaultViewAttempts,
						commands.NewViewLimiter(),
					)
				})
			},
		},
		{
			Name:  "check-credentials",
			Usage: "Show the test account the browser tests will use",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "alternative",
					Usage: "Show the secondary account (ALT_TEST_EMAIL, ALT_TEST_PASSWORD)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return runWithContainer(ctx, func(ctx context.Context, container *app.Container) error {
					loader, err := container.CredentialsLoader()
					if err != nil {
						return err
					}
					return commands.RunCheckCredentials(ctx, loader, commands.DefaultIO(), cmd.Bool("alternative"))
				})
			},
		},
		{
			Name:  "encrypt",
			Usage: "Encrypt a payload with the master password and print the envelope",
			Flags: payloadFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return runWithContainer(ctx, func(ctx context.Context, container *app.Container) error {
					vault, err := container.VaultUseCase()
					if err != nil {
						return err
					}
					return commands.RunEncrypt(ctx, vault, container.Logger(), commands.DefaultIO(), commands.PayloadOptions{
						InputPath:      cmd.String("in"),
						MasterPassword: container.Config().MasterPassword,
					})
				})
			},
		},
		{
			Name:  "decrypt",
			Usage: "Decrypt an envelope with the master password and print the payload",
			Flags: payloadFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return runWithContainer(ctx, func(ctx context.Context, container *app.Container) error {
					vault, err := container.VaultUseCase()
					if err != nil {
						return err
					}
					return commands.RunDecrypt(ctx, vault, container.Logger(), commands.DefaultIO(), commands.PayloadOptions{
						InputPath:      cmd.String("in"),
						MasterPassword: container.Config().MasterPassword,
					})
				})
			},
		},
	}
}

func payloadFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "in",
			Aliases: []string{"i"},
			Usage:   "Read the payload from this file instead of stdin",
		},
	}
}

func stringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
