package interfaces

import (
	"context"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
)

// RosterGateway provides read access to the spreadsheet member roster.
// Writes are handled elsewhere; this core never mutates the roster.
type RosterGateway interface {
	// ListWorksheets retrieves the titles of all worksheets.
	ListWorksheets(ctx context.Context) ([]string, error)

	// ListRecords reads one worksheet as header-keyed records. The first
	// row is the header; empty rows are skipped.
	ListRecords(ctx context.Context, worksheet string) ([]model.RosterRecord, error)
}
