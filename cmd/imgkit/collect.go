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
	"imgkit/internal/infra/exif"
	fsinfra "imgkit/internal/infra/fs"
	"imgkit/internal/infra/ignore"
	"imgkit/internal/infra/lock"
	"imgkit/internal/logging"
	"imgkit/internal/presentation"
	"imgkit/internal/tui"
)

func newCollectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect [source] [target]",
		Short: "Copy every photo below source into the flat directory target",
		Args:  cobra.MaximumNArgs(2),
	}
	flags := config.NewCollectFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := flags.Resolve(args, os.Environ())
		if err != nil {
			return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
		}
		return runCollect(cmd.Context(), cfg, fsinfra.NewOS(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return cmd
}

func newCollector(cfg config.CollectConfig, filesystem *fsinfra.FS, stderr io.Writer) *app.Collector {
	collector := &app.Collector{
		FS:         filesystem,
		Extensions: domain.NewExtensionSet(cfg.Extensions...),
		Logger:     logging.New(stderr, cfg.Verbose).Scoped("collect"),
		DryRun:     cfg.DryRun,
	}
	if len(cfg.Ignore) > 0 {
		collector.Filter = ignore.New(cfg.Ignore)
	}
	if cfg.LockTimeout > 0 {
		collector.Locker = lock.NewDirLocker(cfg.LockTimeout)
	}
	if cfg.DryRun {
		collector.Exif = exif.Reader{Open: filesystem.Open}
	}
	return collector
}

func runCollect(ctx context.Context, cfg config.CollectConfig, filesystem *fsinfra.FS, stdout, stderr io.Writer) error {
	collector := newCollector(cfg, filesystem, stderr)
	printer := presentation.Printer{Writer: stdout, Verbose: cfg.Verbose}

	if cfg.Interactive {
		// the progress view owns the terminal; keep verbose lines off it
		collector.Logger = logging.Discard()
		_, err := tui.Run(ctx, tui.Config{
			SourceDir: cfg.SourceDir,
			TargetDir: cfg.TargetDir,
			DryRun:    cfg.DryRun,
		}, func(ctx context.Context, onProgress func(current, total int, name string)) (domain.CollectResult, error) {
			collector.OnProgress = onProgress
			return collector.Collect(ctx, cfg.SourceDir, cfg.TargetDir)
		})
		return err
	}

	result, err := collector.Collect(ctx, cfg.SourceDir, cfg.TargetDir)
	if err != nil {
		return err
	}
	if cfg.DryRun {
		printer.PrintDryRun(result)
		return nil
	}
	printer.PrintCollected(result)
	return nil
}
