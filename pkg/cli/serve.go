package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/electrium-mobility/rolesync/pkg/cli/config"
	httpctrl "github.com/electrium-mobility/rolesync/pkg/controller/http"
	"github.com/electrium-mobility/rolesync/pkg/service/slackgw"
	"github.com/electrium-mobility/rolesync/pkg/service/worker"
	"github.com/electrium-mobility/rolesync/pkg/usecase"
	"github.com/electrium-mobility/rolesync/pkg/utils/errutil"
	"github.com/electrium-mobility/rolesync/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var schedule string
	var scheduleDryRun bool
	var slackCfg config.Slack
	var outlineCfg config.Outline
	var sheetsCfg config.Sheets
	var mappingCfg config.Mapping

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ROLESYNC_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "sync-schedule",
			Usage:       "Cron expression for the scheduled full sync",
			Value:       worker.DefaultSchedule,
			Sources:     cli.EnvVars("ROLESYNC_SYNC_SCHEDULE"),
			Destination: &schedule,
		},
		&cli.BoolFlag{
			Name:        "sync-dry-run",
			Usage:       "Scheduled syncs report without mutating the directory",
			Sources:     cli.EnvVars("ROLESYNC_SYNC_DRY_RUN"),
			Destination: &scheduleDryRun,
		},
	}
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, outlineCfg.Flags()...)
	flags = append(flags, sheetsCfg.Flags()...)
	flags = append(flags, mappingCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the sync bot: HTTP server plus scheduled syncs",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			chat, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack client")
			}

			directory, err := outlineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Outline client")
			}

			ucOpts := []usecase.Option{
				usecase.WithChat(chat),
				usecase.WithDirectory(directory),
				usecase.WithMappingLoader(mappingCfg.Loader()),
				usecase.WithReportSizeLimit(slackgw.ReportSizeLimit),
			}

			if sheetsCfg.IsConfigured() {
				roster, err := sheetsCfg.Configure(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to configure Google Sheets client")
				}
				ucOpts = append(ucOpts, usecase.WithRoster(roster))
				logging.Default().Info("roster features enabled", "sheets", sheetsCfg)
			} else {
				logging.Default().Info("roster not configured, audit features disabled")
			}

			uc := usecase.New(ucOpts...)
			if err := uc.ReloadMappings(ctx); err != nil {
				_ = errutil.Handle(ctx, err, "initial mapping load failed, continuing with no mappings")
			}

			syncWorker := worker.New(uc,
				worker.WithSchedule(schedule),
				worker.WithDryRun(scheduleDryRun),
			)
			if err := syncWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start sync worker")
			}

			httpOpts := []httpctrl.Options{}
			if slackCfg.IsWebhookConfigured() {
				handler := httpctrl.NewCommandHandler(uc)
				httpOpts = append(httpOpts, httpctrl.WithSlashCommand(handler, slackCfg.SigningSecret()))
				logging.Default().Info("slash command handler enabled")
			} else {
				logging.Default().Info("signing secret not configured, slash commands disabled")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				syncWorker.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				syncWorker.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
