package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/electrium-mobility/rolesync/pkg/domain/interfaces"
	"github.com/electrium-mobility/rolesync/pkg/service/sheets"
)

type Sheets struct {
	credentialsFile string
	spreadsheetID   string
	worksheet       string
}

func (x *Sheets) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sheets-credentials",
			Usage:       "Path to a Google service account credentials JSON file (optional, falls back to ambient credentials)",
			Category:    "Google Sheets",
			Destination: &x.credentialsFile,
			Sources:     cli.EnvVars("ROLESYNC_SHEETS_CREDENTIALS"),
		},
		&cli.StringFlag{
			Name:        "sheets-spreadsheet-id",
			Usage:       "Roster spreadsheet ID",
			Category:    "Google Sheets",
			Destination: &x.spreadsheetID,
			Sources:     cli.EnvVars("ROLESYNC_SHEETS_SPREADSHEET_ID"),
		},
		&cli.StringFlag{
			Name:        "sheets-worksheet",
			Usage:       "Worksheet used for roster-driven status sync",
			Category:    "Google Sheets",
			Destination: &x.worksheet,
			Sources:     cli.EnvVars("ROLESYNC_SHEETS_WORKSHEET"),
		},
	}
}

func (x Sheets) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("credentials", x.credentialsFile),
		slog.String("spreadsheet-id", x.spreadsheetID),
		slog.String("worksheet", x.worksheet),
	)
}

// IsConfigured reports whether a roster gateway can be built. The roster
// features are optional, so a missing spreadsheet only disables them.
func (x *Sheets) IsConfigured() bool {
	return x.spreadsheetID != ""
}

// Worksheet returns the default worksheet for status sync.
func (x *Sheets) Worksheet() string {
	return x.worksheet
}

// Configure builds the roster gateway.
func (x *Sheets) Configure(ctx context.Context) (interfaces.RosterGateway, error) {
	if x.spreadsheetID == "" {
		return nil, goerr.New("roster configuration is required: set --sheets-spreadsheet-id")
	}

	return sheets.New(ctx, x.credentialsFile, x.spreadsheetID)
}
