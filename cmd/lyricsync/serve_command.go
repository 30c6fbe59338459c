package main

import (
	"fmt"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"lyricsync/internal/logging"
	"lyricsync/internal/server"
	"lyricsync/internal/syncjob"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sync pipeline over HTTP",
		Long: `Start the HTTP API on paths.api_bind (or --bind) and serve until interrupted.
Only one server may run per data directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if value := strings.TrimSpace(bind); value != "" {
				cfg.Paths.APIBind = value
			}

			lockPath := cfg.ServerLockPath()
			lock := flock.New(lockPath)
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire server lock: %w", err)
			}
			if !ok {
				return fmt.Errorf("another lyricsync server is already running (lock %s)", lockPath)
			}
			defer func() { _ = lock.Unlock() }()

			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			return ctx.withEngine(cmd, func(engine *syncjob.Engine) error {
				srv, err := server.New(cfg, engine, logger)
				if err != nil {
					return err
				}
				if err := srv.Start(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", srv.Addr())
				<-cmd.Context().Done()
				srv.Stop()
				logger.Info("api server stopped", logging.String("lock", lockPath))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (default paths.api_bind)")
	return cmd
}
