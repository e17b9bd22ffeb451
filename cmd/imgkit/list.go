package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"imgkit/internal/app"
	"imgkit/internal/config"
	"imgkit/internal/domain"
	appErrors "imgkit/internal/errors"
	fsinfra "imgkit/internal/infra/fs"
	"imgkit/internal/logging"
	"imgkit/internal/presentation"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "Write the names of the images directly inside dir to a JSON file",
		Args:  cobra.MaximumNArgs(1),
	}
	flags := config.NewListFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := flags.Resolve(args, os.Environ())
		if err != nil {
			return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
		}
		return runList(cmd.Context(), cfg, fsinfra.NewOS(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return cmd
}

func runList(ctx context.Context, cfg config.ListConfig, filesystem app.FileSystem, stdout, stderr io.Writer) error {
	lister := app.Lister{
		FS:         filesystem,
		Extensions: domain.NewExtensionSet(cfg.Extensions...),
		Logger:     logging.New(stderr, cfg.Verbose).Scoped("list"),
	}

	count, err := lister.Write(ctx, cfg.SourceDir, cfg.Output)
	if err != nil {
		return err
	}

	presentation.Printer{Writer: stdout, Verbose: cfg.Verbose}.PrintListed(count)
	return nil
}
