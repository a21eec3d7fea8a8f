package main

import (
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	v1 "github.com/vmunix/namebot/internal/api/v1"
	"github.com/vmunix/namebot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve the naming API and prune the metadata cache in the background.

Stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Duration("prune-interval", server.DefaultPruneInterval, "Metadata cache prune interval")
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	pruneInterval, _ := cmd.Flags().GetDuration("prune-interval")

	return withApp(cmd.Context(), cmd.ErrOrStderr(), func(a *app) error {
		lock, err := acquireServeLock(a.cfg.Database.Path)
		if err != nil {
			return err
		}
		defer func() { _ = lock.Unlock() }()

		runner, err := newRunner(a, pruneInterval)
		if err != nil {
			return err
		}
		a.log.Info("namebot starting", "version", version, "addr", a.cfg.Server.Addr(), "db", a.cfg.Database.Path)
		if err := runner.Run(cmd.Context()); err != nil {
			return err
		}
		a.log.Info("namebot stopped")
		return nil
	})
}

func newRunner(a *app, pruneInterval time.Duration) (*server.Runner, error) {
	api, err := v1.New(v1.ServerDeps{
		Namer:   a.namer,
		Chat:    a.chat,
		History: a.history,
		Cache:   a.cache,
		Log:     a.log.With("component", "api"),
		Version: version,
	})
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}

	return server.NewRunner(server.Config{
		Addr:          a.cfg.Server.Addr(),
		PruneInterval: pruneInterval,
	}, api.Handler(), a.titles, a.log.With("component", "server")), nil
}

// acquireServeLock takes an exclusive lock next to the database so that
// only one server uses it.
func acquireServeLock(dbPath string) (*flock.Flock, error) {
	lock := flock.New(dbPath + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another namebot server is using %s", dbPath)
	}
	return lock, nil
}
