package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/electrium-mobility/rolesync/pkg/domain/interfaces"
	"github.com/electrium-mobility/rolesync/pkg/service/slackgw"
)

type Slack struct {
	botToken      string `masq:"secret"`
	signingSecret string `masq:"secret"`
	reportChannel string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("ROLESYNC_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret (for slash command verification)",
			Category:    "Slack",
			Destination: &x.signingSecret,
			Sources:     cli.EnvVars("ROLESYNC_SLACK_SIGNING_SECRET"),
		},
		&cli.StringFlag{
			Name:        "slack-report-channel",
			Usage:       "Channel ID for sync reports",
			Category:    "Slack",
			Destination: &x.reportChannel,
			Sources:     cli.EnvVars("ROLESYNC_SLACK_REPORT_CHANNEL"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
		slog.String("report-channel", x.reportChannel),
	)
}

// Configure builds the chat gateway from the bot token.
func (x *Slack) Configure() (interfaces.ChatGateway, error) {
	if x.botToken == "" {
		return nil, goerr.New("Slack bot token is required: set --slack-bot-token")
	}

	var opts []slackgw.Option
	if x.reportChannel != "" {
		opts = append(opts, slackgw.WithReportChannel(x.reportChannel))
	}

	return slackgw.New(x.botToken, opts...)
}

// SigningSecret returns the signing secret for webhook verification.
func (x *Slack) SigningSecret() string {
	return x.signingSecret
}

// IsWebhookConfigured reports whether slash commands can be verified.
func (x *Slack) IsWebhookConfigured() bool {
	return x.signingSecret != ""
}
