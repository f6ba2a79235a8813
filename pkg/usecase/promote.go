package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// PromoteStatuses advances the membership status cycle by one step:
// members holding the middle status move to the last, members holding the
// first move to the middle. Members already holding the last status are
// left untouched even if they also hold an earlier one, so nobody is
// promoted twice in one pass.
func (uc *UseCases) PromoteStatuses(ctx context.Context, dryRun bool) (*model.PromotionResult, error) {
	if len(uc.statusRoles) != 3 {
		return nil, goerr.New("status promotion requires exactly three status roles",
			goerr.V("roles", uc.statusRoles))
	}
	incoming, active, previous := uc.statusRoles[0], uc.statusRoles[1], uc.statusRoles[2]

	holders := make(map[string]map[string]struct{}, 3)
	for _, role := range uc.statusRoles {
		members, ok, err := uc.chat.GetRoleHolders(ctx, role)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch status role holders", goerr.V("role", role))
		}
		if !ok {
			return nil, goerr.Wrap(ErrRoleNotFound, "status role missing", goerr.V("role", role))
		}
		set := make(map[string]struct{}, len(members))
		for _, m := range members {
			set[strings.ToLower(m.Handle)] = struct{}{}
		}
		holders[role] = set
	}

	inPrevious := func(handle string) bool {
		_, ok := holders[previous][handle]
		return ok
	}

	result := &model.PromotionResult{}

	newPrevious := cloneSet(holders[previous])
	newActive := make(map[string]struct{})
	newIncoming := make(map[string]struct{})

	for handle := range holders[active] {
		if inPrevious(handle) {
			newActive[handle] = struct{}{} // untouched, keeps both
			continue
		}
		newPrevious[handle] = struct{}{}
		result.Changes = append(result.Changes, model.StatusChange{
			Handle: handle, From: active, To: previous,
		})
	}

	for handle := range holders[incoming] {
		if inPrevious(handle) {
			newIncoming[handle] = struct{}{}
			continue
		}
		newActive[handle] = struct{}{}
		result.Changes = append(result.Changes, model.StatusChange{
			Handle: handle, From: incoming, To: active,
		})
	}

	sort.Slice(result.Changes, func(i, j int) bool {
		if result.Changes[i].Handle != result.Changes[j].Handle {
			return result.Changes[i].Handle < result.Changes[j].Handle
		}
		return result.Changes[i].From < result.Changes[j].From
	})

	if dryRun || len(result.Changes) == 0 {
		return result, nil
	}

	for role, set := range map[string]map[string]struct{}{
		previous: newPrevious,
		active:   newActive,
		incoming: newIncoming,
	} {
		if equalSets(holders[role], set) {
			continue
		}
		if err := uc.chat.SetRoleHolders(ctx, role, sortedKeys(set)); err != nil {
			return result, goerr.Wrap(err, "failed to update status role", goerr.V("role", role))
		}
	}

	logging.From(ctx).Info("status promotion finished", "changes", len(result.Changes))
	return result, nil
}

// RenderPromotion formats a promotion result as chunked report blocks.
func RenderPromotion(result *model.PromotionResult, dryRun bool, limit int) []string {
	header := "Status promotion"
	if dryRun {
		header = "Status promotion (dry run)"
	}

	lines := []string{header}
	if len(result.Changes) == 0 {
		lines = append(lines, "no changes needed")
	}
	for _, ch := range result.Changes {
		lines = append(lines, fmt.Sprintf("%s: %s -> %s", ch.Handle, ch.From, ch.To))
	}

	return ChunkLines(lines, limit)
}

func cloneSet(s map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func equalSets(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func sortedKeys(s map[string]struct{}) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
