package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/electrium-mobility/rolesync/pkg/cli/config"
	"github.com/electrium-mobility/rolesync/pkg/usecase"
)

func cmdStatus() *cli.Command {
	var dryRun bool
	var slackCfg config.Slack
	var sheetsCfg config.Sheets

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Report what would change without updating roles",
			Sources:     cli.EnvVars("ROLESYNC_DRY_RUN"),
			Destination: &dryRun,
		},
	}
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sheetsCfg.Flags()...)

	return &cli.Command{
		Name:  "status",
		Usage: "Converge chat status roles to the roster's Status column",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if sheetsCfg.Worksheet() == "" {
				return goerr.New("a worksheet is required: set --sheets-worksheet")
			}

			chat, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack client")
			}
			roster, err := sheetsCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Google Sheets client")
			}

			uc := usecase.New(
				usecase.WithChat(chat),
				usecase.WithRoster(roster),
			)

			result, err := uc.SyncStatuses(ctx, sheetsCfg.Worksheet(), dryRun)
			if err != nil {
				return goerr.Wrap(err, "status sync failed")
			}

			for _, block := range usecase.RenderStatusSync(result, sheetsCfg.Worksheet(), dryRun, 0) {
				fmt.Println(block)
			}
			if len(result.Assigned) == 0 {
				color.Green("all statuses are up to date")
			}

			return nil
		},
	}
}
