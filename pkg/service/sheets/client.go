package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/electrium-mobility/rolesync/pkg/domain/interfaces"
	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// client implements interfaces.RosterGateway over the Google Sheets API.
type client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New creates a roster gateway for the given spreadsheet using service
// account credentials.
func New(ctx context.Context, credentialsFile, spreadsheetID string) (interfaces.RosterGateway, error) {
	if spreadsheetID == "" {
		return nil, goerr.New("spreadsheet ID is required")
	}

	opts := []option.ClientOption{
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope),
	}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create sheets service")
	}

	return &client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

// ListWorksheets retrieves the titles of all worksheets in the spreadsheet.
func (c *client) ListWorksheets(ctx context.Context) ([]string, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get spreadsheet",
			goerr.V("spreadsheet_id", c.spreadsheetID), goerr.T(types.ErrTagUpstream))
	}

	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}

	return titles, nil
}

// ListRecords reads one worksheet as header-keyed records. The first row
// is the header; rows with no non-empty cell are skipped.
func (c *client) ListRecords(ctx context.Context, worksheet string) ([]model.RosterRecord, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, worksheet).Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read worksheet",
			goerr.V("worksheet", worksheet), goerr.T(types.ErrTagUpstream))
	}

	if len(resp.Values) < 2 {
		return nil, nil // header only, or empty sheet
	}

	headers := make([]string, len(resp.Values[0]))
	for i, h := range resp.Values[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(h))
	}

	var records []model.RosterRecord
	for _, row := range resp.Values[1:] {
		record := make(model.RosterRecord, len(headers))
		empty := true
		for i, h := range headers {
			if h == "" || i >= len(row) {
				continue
			}
			v := strings.TrimSpace(fmt.Sprint(row[i]))
			if v != "" {
				empty = false
			}
			record[h] = v
		}
		if !empty {
			records = append(records, record)
		}
	}

	return records, nil
}
