package usecase

import (
	"context"
	"strings"

	"github.com/electrium-mobility/rolesync/pkg/domain/interfaces"
	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/domain/types"
	"github.com/electrium-mobility/rolesync/pkg/utils/logging"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// ErrRoleNotFound signals that the mapping's role does not exist in the
// chat workspace. The orchestrator reports it as its own condition, not as
// a mapping failure.
var ErrRoleNotFound = goerr.New("role not found in chat workspace")

// MutationOutcome is the classification of a directory mutation response.
type MutationOutcome int

const (
	MutationAdded MutationOutcome = iota
	MutationAlreadyMember
	MutationFailed
)

// alreadyMemberKeywords are the free-text markers the directory API uses
// to report duplicate membership. The API has no structured status code
// for this case, so classification is a keyword heuristic; revisit if the
// upstream API ever grows one.
var alreadyMemberKeywords = []string{"already", "duplicate", "conflict"}

// classifyMutationOutcome decides whether an add-to-group response means
// added, already-member, or failed. All response inspection lives here so
// the heuristic never leaks into reconciliation control flow.
func classifyMutationOutcome(resp *interfaces.MutationResponse) MutationOutcome {
	body := strings.ToLower(resp.Body)
	for _, kw := range alreadyMemberKeywords {
		if strings.Contains(body, kw) {
			return MutationAlreadyMember
		}
	}

	if resp.OK {
		return MutationAdded
	}
	return MutationFailed
}

// Reconcile converges one (role, group) pair: every current role holder is
// matched against the directory and added to the group unless already a
// member. With dryRun set, all decisions are mirrored but no writes are
// issued. Returns ErrRoleNotFound when the role does not exist.
func (uc *UseCases) Reconcile(ctx context.Context, roleName, groupName string, dryRun bool) (*model.SyncOutcome, error) {
	logger := logging.From(ctx)

	holders, ok, err := uc.chat.GetRoleHolders(ctx, roleName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch role holders", goerr.V("role", roleName))
	}
	if !ok {
		return nil, goerr.Wrap(ErrRoleNotFound, "cannot reconcile mapping", goerr.V("role", roleName))
	}

	var users []*model.DirectoryUser
	var groups []model.DirectoryGroup

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		users, err = uc.directory.ListUsers(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		groups, err = uc.directory.ListGroups(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch directory snapshot", goerr.V("role", roleName))
	}

	groupID, err := uc.resolveGroup(ctx, groups, roleName, groupName, dryRun)
	if err != nil {
		return nil, err
	}

	outcome := &model.SyncOutcome{
		RoleName:  roleName,
		GroupName: groupName,
	}

	for _, member := range holders {
		result := Match(member, users)
		if result.Matched == nil {
			logger.Debug("no directory match for role holder",
				"role", roleName, "handle", member.Handle, "reason", result.Reason)
			outcome.Failed = append(outcome.Failed, model.FailedMember{
				Member: member,
				Reason: model.FailNoMatch,
			})
			continue
		}

		// Membership visible in the snapshot is reported without issuing
		// the add, so repeating a run against an unchanged workspace makes
		// zero mutating calls. A snapshot that is stale (the membership
		// exists upstream but was fetched before it landed) still resolves
		// to AlreadyMember below via classifyMutationOutcome.
		if result.Matched.InGroup(groupID) {
			outcome.AlreadyMember = append(outcome.AlreadyMember, member)
			continue
		}

		if dryRun {
			outcome.Synced = append(outcome.Synced, member)
			continue
		}

		resp, err := uc.directory.AddUserToGroup(ctx, result.Matched.ID, groupID)
		if err != nil {
			logger.Warn("add to group failed",
				"role", roleName, "group", groupName, "handle", member.Handle, "error", err.Error())
			outcome.Failed = append(outcome.Failed, model.FailedMember{
				Member: member,
				Reason: model.FailMutation,
			})
			continue
		}

		switch classifyMutationOutcome(resp) {
		case MutationAdded:
			outcome.Synced = append(outcome.Synced, member)
		case MutationAlreadyMember:
			outcome.AlreadyMember = append(outcome.AlreadyMember, member)
		default:
			outcome.Failed = append(outcome.Failed, model.FailedMember{
				Member: member,
				Reason: model.FailMutation,
			})
		}
	}

	return outcome, nil
}

// resolveGroup finds the target group case-insensitively, creating it when
// absent. A dry run synthesizes a placeholder ID instead so downstream
// classification proceeds uniformly.
func (uc *UseCases) resolveGroup(ctx context.Context, groups []model.DirectoryGroup, roleName, groupName string, dryRun bool) (types.GroupID, error) {
	for _, g := range groups {
		if strings.EqualFold(g.Name, groupName) {
			return g.ID, nil
		}
	}

	if dryRun {
		return types.GroupID("dryrun-" + uuid.NewString()), nil
	}

	created, err := uc.directory.CreateGroup(ctx, groupName, "Auto-synced from role: "+roleName)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create directory group",
			goerr.V("group", groupName), goerr.V("role", roleName), goerr.T(types.ErrTagMutation))
	}

	logging.From(ctx).Info("created directory group", "group", groupName, "id", created.ID)
	return created.ID, nil
}
