package usecase

import (
	"fmt"
	"strings"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
)

// defaultReportSizeLimit caps one report message. Kept under the chat
// transport's ceiling with headroom for markdown decoration.
const defaultReportSizeLimit = 3000

// RenderReport formats a sync report as a sequence of text blocks, each at
// most limit bytes, ready for posting one message per block.
func RenderReport(report *model.SyncReport, limit int) []string {
	header := "Role sync report"
	if report.DryRun {
		header = "Role sync report (dry run)"
	}

	lines := []string{header}
	for _, r := range report.Results {
		lines = append(lines, renderMappingResult(r)...)
	}
	if len(report.Results) == 0 {
		lines = append(lines, "no role mappings configured")
	}

	return ChunkLines(lines, limit)
}

func renderMappingResult(r model.MappingResult) []string {
	head := fmt.Sprintf("'%s' -> '%s'", r.RoleName, r.GroupName)

	switch r.Status {
	case model.MappingRoleNotFound:
		return []string{head + ": role not found in workspace"}
	case model.MappingFailed:
		return []string{head + ": failed: " + r.Err.Error()}
	}

	o := r.Outcome
	lines := []string{fmt.Sprintf("%s: %d synced, %d already members, %d failed",
		head, len(o.Synced), len(o.AlreadyMember), len(o.Failed))}

	// Failures are grouped by reason so a run with many unmatched members
	// stays readable.
	byReason := make(map[model.FailReason][]string)
	var order []model.FailReason
	for _, f := range o.Failed {
		if _, ok := byReason[f.Reason]; !ok {
			order = append(order, f.Reason)
		}
		byReason[f.Reason] = append(byReason[f.Reason], f.Member.Handle)
	}
	for _, reason := range order {
		lines = append(lines, fmt.Sprintf("  %s: %s", reason, strings.Join(byReason[reason], ", ")))
	}

	return lines
}

// ChunkLines joins lines into blocks of at most limit bytes each. A single
// oversized line becomes its own (truncated) block rather than breaking
// the limit.
func ChunkLines(lines []string, limit int) []string {
	if limit <= 0 {
		limit = defaultReportSizeLimit
	}

	var blocks []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			blocks = append(blocks, b.String())
			b.Reset()
		}
	}

	for _, line := range lines {
		if len(line) > limit {
			line = line[:limit]
		}
		// +1 for the joining newline
		if b.Len() > 0 && b.Len()+len(line)+1 > limit {
			flush()
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	flush()

	return blocks
}
