package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/utils/errutil"
	"github.com/electrium-mobility/rolesync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// AuditRoster checks every roster worksheet against the chat workspace:
// each record is classified as found (exact handle or display-name match,
// case-insensitive), missing, or empty-username. A worksheet that fails to
// read is logged and skipped; the remaining worksheets still get audited.
func (uc *UseCases) AuditRoster(ctx context.Context) (*model.RosterAudit, error) {
	if uc.roster == nil {
		return nil, goerr.New("roster gateway is not configured")
	}

	members, err := uc.chat.ListMembers(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list chat members")
	}

	byHandle := make(map[string]struct{}, len(members))
	byDisplayName := make(map[string]struct{}, len(members))
	for _, m := range members {
		byHandle[strings.ToLower(m.Handle)] = struct{}{}
		if m.DisplayName != "" {
			byDisplayName[strings.ToLower(m.DisplayName)] = struct{}{}
		}
	}

	worksheets, err := uc.roster.ListWorksheets(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list roster worksheets")
	}

	audit := &model.RosterAudit{}
	for _, ws := range worksheets {
		records, err := uc.roster.ListRecords(ctx, ws)
		if err != nil {
			errutil.Handle(ctx, err, "failed to read roster worksheet, skipping")
			continue
		}
		if len(records) == 0 {
			continue
		}

		wa := model.WorksheetAudit{Worksheet: ws, Total: len(records)}
		for _, rec := range records {
			username := rec.Username()
			if username == "" {
				wa.EmptyUsername = append(wa.EmptyUsername, rec)
				continue
			}

			key := strings.ToLower(username)
			if _, ok := byHandle[key]; ok {
				wa.Found = append(wa.Found, rec)
				continue
			}
			if _, ok := byDisplayName[key]; ok {
				wa.Found = append(wa.Found, rec)
				continue
			}
			wa.Missing = append(wa.Missing, rec)
		}

		audit.Worksheets = append(audit.Worksheets, wa)
	}

	logging.From(ctx).Info("roster audit finished",
		"worksheets", len(audit.Worksheets),
		"found", audit.TotalFound(),
		"missing", audit.TotalMissing(),
		"empty", audit.TotalEmpty(),
	)

	return audit, nil
}

// RenderAudit formats a roster audit as chunked report blocks.
func RenderAudit(audit *model.RosterAudit, limit int) []string {
	lines := []string{
		"Roster audit",
		fmt.Sprintf("worksheets: %d, found: %d, missing: %d, empty usernames: %d, records: %d",
			len(audit.Worksheets), audit.TotalFound(), audit.TotalMissing(),
			audit.TotalEmpty(), audit.TotalRecords()),
	}

	for _, ws := range audit.Worksheets {
		lines = append(lines, fmt.Sprintf("%s: %d found, %d missing, %d empty",
			ws.Worksheet, len(ws.Found), len(ws.Missing), len(ws.EmptyUsername)))
		for _, rec := range ws.Missing {
			line := fmt.Sprintf("  missing: %s (%s)", rec.FullName(), rec.Username())
			if email := rec.Email(); email != "" {
				line += " - " + email
			}
			lines = append(lines, line)
		}
	}

	return ChunkLines(lines, limit)
}
