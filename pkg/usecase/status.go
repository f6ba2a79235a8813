package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/utils/logging"
)

// SyncStatuses converges chat status roles to the roster. The worksheet
// is expected to carry Username and Status columns; each member found in
// chat ends up holding exactly the status role the roster names, members
// absent from chat are reported as missing, and statuses outside the
// configured cycle are reported rather than applied.
func (uc *UseCases) SyncStatuses(ctx context.Context, worksheet string, dryRun bool) (*model.StatusSyncResult, error) {
	if uc.roster == nil {
		return nil, goerr.New("roster gateway is not configured")
	}

	records, err := uc.roster.ListRecords(ctx, worksheet)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list roster records",
			goerr.V("worksheet", worksheet))
	}

	members, err := uc.chat.ListMembers(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list chat members")
	}
	byHandle := make(map[string]struct{}, len(members))
	for _, m := range members {
		byHandle[strings.ToLower(m.Handle)] = struct{}{}
	}

	// Current holders of each status role, keyed by lowercase handle.
	holders := make(map[string]map[string]struct{}, len(uc.statusRoles))
	currentOf := make(map[string]string)
	for _, role := range uc.statusRoles {
		hs, ok, err := uc.chat.GetRoleHolders(ctx, role)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get status role holders",
				goerr.V("role", role))
		}
		if !ok {
			return nil, goerr.Wrap(ErrRoleNotFound, "status role is missing",
				goerr.V("role", role))
		}
		set := make(map[string]struct{}, len(hs))
		for _, h := range hs {
			key := strings.ToLower(h.Handle)
			set[key] = struct{}{}
			currentOf[key] = role
		}
		holders[role] = set
	}

	roleByName := make(map[string]string, len(uc.statusRoles))
	for _, role := range uc.statusRoles {
		roleByName[strings.ToLower(role)] = role
	}

	desired := make(map[string]map[string]struct{}, len(uc.statusRoles))
	for role, set := range holders {
		desired[role] = cloneSet(set)
	}

	result := &model.StatusSyncResult{}
	for _, rec := range records {
		username := rec.Username()
		if username == "" {
			continue
		}
		key := strings.ToLower(username)

		role, ok := roleByName[strings.ToLower(rec.Status())]
		if !ok {
			result.UnknownStatus = append(result.UnknownStatus, username)
			continue
		}
		if _, found := byHandle[key]; !found {
			result.Missing = append(result.Missing, username)
			continue
		}

		if currentOf[key] == role {
			result.AlreadyCurrent++
			continue
		}
		for other, set := range desired {
			if other != role {
				delete(set, key)
			}
		}
		desired[role][key] = struct{}{}
		result.Assigned = append(result.Assigned, model.StatusChange{
			Handle: username,
			From:   currentOf[key],
			To:     role,
		})
	}

	sort.Slice(result.Assigned, func(i, j int) bool {
		return result.Assigned[i].Handle < result.Assigned[j].Handle
	})
	sort.Strings(result.Missing)
	sort.Strings(result.UnknownStatus)

	if dryRun || len(result.Assigned) == 0 {
		return result, nil
	}

	for _, role := range uc.statusRoles {
		if equalSets(holders[role], desired[role]) {
			continue
		}
		if err := uc.chat.SetRoleHolders(ctx, role, sortedKeys(desired[role])); err != nil {
			return result, goerr.Wrap(err, "failed to update status role holders",
				goerr.V("role", role))
		}
		logging.From(ctx).Info("updated status role holders",
			"role", role, "count", len(desired[role]))
	}

	return result, nil
}

// RenderStatusSync formats a status sync result into report blocks.
func RenderStatusSync(result *model.StatusSyncResult, worksheet string, dryRun bool, limit int) []string {
	if limit <= 0 {
		limit = defaultReportSizeLimit
	}

	header := fmt.Sprintf("Status sync for worksheet '%s'", worksheet)
	if dryRun {
		header += " (dry run)"
	}
	lines := []string{header}

	if len(result.Assigned) == 0 {
		lines = append(lines, "all statuses are up to date")
	}
	for _, c := range result.Assigned {
		if c.From == "" {
			lines = append(lines, fmt.Sprintf("%s: (none) -> %s", c.Handle, c.To))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s -> %s", c.Handle, c.From, c.To))
	}
	if result.AlreadyCurrent > 0 {
		lines = append(lines, fmt.Sprintf("%d members already current", result.AlreadyCurrent))
	}
	if len(result.Missing) > 0 {
		lines = append(lines, fmt.Sprintf("missing from chat: %s", strings.Join(result.Missing, ", ")))
	}
	if len(result.UnknownStatus) > 0 {
		lines = append(lines, fmt.Sprintf("unrecognized status: %s", strings.Join(result.UnknownStatus, ", ")))
	}

	return ChunkLines(lines, limit)
}
