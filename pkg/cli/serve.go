package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/regform/pkg/cli/config"
	httpctrl "github.com/secmon-lab/regform/pkg/controller/http"
	"github.com/secmon-lab/regform/pkg/service/worker"
	"github.com/secmon-lab/regform/pkg/usecase"
	"github.com/secmon-lab/regform/pkg/utils/logging"
	"github.com/secmon-lab/regform/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var pruneInterval time.Duration
	var formTTL time.Duration
	var repoCfg config.Repository
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("REGFORM_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "prune-interval",
			Usage:       "Interval of background removal of abandoned forms (0 disables)",
			Value:       time.Hour,
			Sources:     cli.EnvVars("REGFORM_PRUNE_INTERVAL"),
			Destination: &pruneInterval,
		},
		&cli.DurationFlag{
			Name:        "form-ttl",
			Usage:       "Forms untouched for longer than this are removed by background pruning",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("REGFORM_FORM_TTL"),
			Destination: &formTTL,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			ctx = logging.With(ctx, logger)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer flush()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo)

			httpHandler, err := httpctrl.New(uc.Focus, httpctrl.WithSentry(sentryCfg.Enabled()))
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			if pruneInterval > 0 {
				pruneWorker := worker.NewFormPruneWorker(uc.Prune, pruneInterval, formTTL)
				pruneWorker.Start(ctx)
				defer pruneWorker.Stop()
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server",
					"addr", addr,
					"repository", repoCfg,
					"sentry", sentryCfg,
					"prune_interval", pruneInterval,
					"form_ttl", formTTL)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
