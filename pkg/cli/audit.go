package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/electrium-mobility/rolesync/pkg/cli/config"
	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/usecase"
)

func cmdAudit() *cli.Command {
	var slackCfg config.Slack
	var sheetsCfg config.Sheets

	var flags []cli.Flag
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sheetsCfg.Flags()...)

	return &cli.Command{
		Name:  "audit",
		Usage: "Check that every roster member exists in the chat workspace",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
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

			audit, err := uc.AuditRoster(ctx)
			if err != nil {
				return goerr.Wrap(err, "roster audit failed")
			}

			for _, block := range usecase.RenderAudit(audit, 0) {
				fmt.Println(block)
			}
			line, ok := auditSummary(audit)
			if ok {
				color.Green("%s", line)
			} else {
				color.Red("%s", line)
			}

			return nil
		},
	}
}

// auditSummary renders the closing line of the audit output. ok is false
// when any roster member is absent from chat.
func auditSummary(audit *model.RosterAudit) (string, bool) {
	if n := audit.TotalMissing(); n > 0 {
		return fmt.Sprintf("%d roster members are missing from chat", n), false
	}
	return "all roster members are present in chat", true
}
