package cli

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
)

func TestAuditSummaryWithMissingMembers(t *testing.T) {
	audit := &model.RosterAudit{
		Worksheets: []model.WorksheetAudit{
			{
				Worksheet: "W2026",
				Found:     []model.RosterRecord{{"Username": "alice"}},
				Missing: []model.RosterRecord{
					{"Username": "bob"},
					{"Username": "carol"},
				},
				Total: 3,
			},
			{
				Worksheet: "S2026",
				Missing:   []model.RosterRecord{{"Username": "dave"}},
				Total:     1,
			},
		},
	}

	line, ok := auditSummary(audit)
	gt.Bool(t, ok).False()
	gt.Value(t, line).Equal("3 roster members are missing from chat")
}

func TestAuditSummaryAllPresent(t *testing.T) {
	audit := &model.RosterAudit{
		Worksheets: []model.WorksheetAudit{
			{
				Worksheet: "W2026",
				Found:     []model.RosterRecord{{"Username": "alice"}},
				Total:     1,
			},
		},
	}

	line, ok := auditSummary(audit)
	gt.Bool(t, ok).True()
	gt.Value(t, line).Equal("all roster members are present in chat")
}
