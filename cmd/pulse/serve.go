package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pulse/internal/checker"
	"pulse/internal/engine"
	"pulse/internal/host"
	"pulse/internal/project"
	"pulse/internal/rpc"
)

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Host the projects from pulse.toml on the status channel",
	Long:         `Analyze every project declared in pulse.toml, keep the results fresh as files change, and answer status queries on the local channel`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	serveCmd.Flags().String("manifest", "", "path to pulse.toml (default: discovered from the working directory)")
	serveCmd.Flags().Bool("verbose", false, "enable debug logging")
}

func runServe(cmd *cobra.Command, _ []string) error {
	manifestPath, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("failed to get manifest flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}

	if manifestPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		path, ok, err := project.FindPulseToml(cwd)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no pulse.toml found in %s or any parent directory", cwd)
		}
		manifestPath = path
	}
	manifest, err := project.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	channel, err := cmd.Root().PersistentFlags().GetString("channel")
	if err != nil {
		return fmt.Errorf("failed to get channel flag: %w", err)
	}
	if channel == "" {
		channel = manifest.Host.Channel
	}
	socket := rpc.SocketPath(channel)

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := host.New(socket, logger)
	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range manifest.Projects {
		watcher := engine.NewWatcher(engine.LoadOptions{
			Dir:        entry.Dir,
			BuildFlags: entry.BuildFlags,
			Env:        entry.Env,
			Tests:      entry.Tests,
		}, manifest.Debounce(), logger.With("project", entry.Name))

		if err := h.Activate(checker.New(entry.Name, watcher.Program)); err != nil {
			return err
		}
		g.Go(func() error {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	err = g.Wait()
	if shutdownErr := h.Shutdown(); err == nil && !errors.Is(shutdownErr, context.Canceled) {
		err = shutdownErr
	}
	return err
}
