package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/electrium-mobility/rolesync/pkg/cli/config"
	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/usecase"
)

func cmdSync() *cli.Command {
	var dryRun bool
	var slackCfg config.Slack
	var outlineCfg config.Outline
	var mappingCfg config.Mapping

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Report what would change without mutating the directory",
			Sources:     cli.EnvVars("ROLESYNC_DRY_RUN"),
			Destination: &dryRun,
		},
	}
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, outlineCfg.Flags()...)
	flags = append(flags, mappingCfg.Flags()...)

	return &cli.Command{
		Name:  "sync",
		Usage: "Run a full role sync once and print the report",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			chat, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack client")
			}
			directory, err := outlineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Outline client")
			}

			uc := usecase.New(
				usecase.WithChat(chat),
				usecase.WithDirectory(directory),
				usecase.WithMappingLoader(mappingCfg.Loader()),
			)
			if err := uc.ReloadMappings(ctx); err != nil {
				return goerr.Wrap(err, "failed to load role mappings")
			}

			report := uc.RunFullSync(ctx, dryRun)
			printSyncReport(report)

			return nil
		},
	}
}

func printSyncReport(report *model.SyncReport) {
	title := "Role sync report"
	if report.DryRun {
		title += " (dry run)"
	}
	color.New(color.Bold).Println(title)

	if len(report.Results) == 0 {
		color.Yellow("no role mappings configured")
		return
	}

	for _, r := range report.Results {
		switch r.Status {
		case model.MappingRoleNotFound:
			color.Yellow("'%s': role not found in chat, skipped", r.RoleName)
		case model.MappingFailed:
			color.Red("'%s' -> '%s': failed: %s", r.RoleName, r.GroupName, r.Err)
		case model.MappingSynced:
			printOutcome(r.Outcome)
		}
	}
}

func printOutcome(o *model.SyncOutcome) {
	line := fmt.Sprintf("'%s' -> '%s': %d synced, %d already members, %d failed",
		o.RoleName, o.GroupName, len(o.Synced), len(o.AlreadyMember), len(o.Failed))

	if len(o.Failed) > 0 {
		color.Red(line)
		for _, f := range o.Failed {
			fmt.Printf("    %s: %s\n", f.Member.Handle, f.Reason)
		}
		return
	}
	if len(o.Synced) > 0 {
		color.Green(line)
		fmt.Printf("    %s\n", strings.Join(handlesOf(o.Synced), ", "))
		return
	}
	fmt.Println(line)
}

func handlesOf(members []model.ChatMember) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Handle
	}
	return out
}
