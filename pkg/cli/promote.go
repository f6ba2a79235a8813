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

func cmdPromote() *cli.Command {
	var dryRun bool
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Report what would change without updating roles",
			Sources:     cli.EnvVars("ROLESYNC_DRY_RUN"),
			Destination: &dryRun,
		},
	}
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:  "promote",
		Usage: "Advance each member one step along the status cycle (Incoming -> Active -> Previous)",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			chat, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack client")
			}

			uc := usecase.New(usecase.WithChat(chat))

			result, err := uc.PromoteStatuses(ctx, dryRun)
			if err != nil {
				return goerr.Wrap(err, "status promotion failed")
			}

			for _, block := range usecase.RenderPromotion(result, dryRun, 0) {
				fmt.Println(block)
			}
			if len(result.Changes) == 0 {
				color.Green("no status changes needed")
			}

			return nil
		},
	}
}
