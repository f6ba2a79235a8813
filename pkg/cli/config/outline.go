package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/electrium-mobility/rolesync/pkg/domain/interfaces"
	"github.com/electrium-mobility/rolesync/pkg/service/outline"
)

type Outline struct {
	baseURL  string
	apiToken string `masq:"secret"`
	pageSize int
}

func (x *Outline) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "outline-url",
			Usage:       "Outline API base URL (e.g. https://docs.example.com/api)",
			Category:    "Outline",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("ROLESYNC_OUTLINE_URL"),
		},
		&cli.StringFlag{
			Name:        "outline-api-token",
			Usage:       "Outline API token",
			Category:    "Outline",
			Destination: &x.apiToken,
			Sources:     cli.EnvVars("ROLESYNC_OUTLINE_API_TOKEN"),
		},
		&cli.IntFlag{
			Name:        "outline-page-size",
			Usage:       "Page size for paginated Outline API calls",
			Category:    "Outline",
			Value:       outline.DefaultPageSize,
			Destination: &x.pageSize,
			Sources:     cli.EnvVars("ROLESYNC_OUTLINE_PAGE_SIZE"),
		},
	}
}

func (x Outline) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", x.baseURL),
		slog.Int("api-token.len", len(x.apiToken)),
		slog.Int("page-size", x.pageSize),
	)
}

// Configure builds the directory gateway.
func (x *Outline) Configure() (interfaces.DirectoryGateway, error) {
	if x.baseURL == "" || x.apiToken == "" {
		return nil, goerr.New("Outline configuration is required: set --outline-url and --outline-api-token")
	}

	return outline.New(x.baseURL, x.apiToken, outline.WithPageSize(x.pageSize))
}
