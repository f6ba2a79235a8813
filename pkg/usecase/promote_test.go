package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/usecase"
)

func statusChat(byRole map[string][]model.ChatMember) *chatMock {
	return &chatMock{
		getRoleHolders: func(ctx context.Context, roleName string) ([]model.ChatMember, bool, error) {
			members, ok := byRole[roleName]
			if !ok {
				return nil, false, nil
			}
			return members, true, nil
		},
	}
}

func TestPromoteStatusesAdvancesOneStep(t *testing.T) {
	chat := statusChat(map[string][]model.ChatMember{
		"Incoming": {{Handle: "newbie"}},
		"Active":   {{Handle: "worker"}},
		"Previous": {{Handle: "alum"}},
	})

	uc := usecase.New(usecase.WithChat(chat))

	result, err := uc.PromoteStatuses(context.Background(), false)
	gt.NoError(t, err).Required()

	gt.Array(t, result.Changes).Length(2).Required()
	gt.Value(t, result.Changes[0]).Equal(model.StatusChange{Handle: "newbie", From: "Incoming", To: "Active"})
	gt.Value(t, result.Changes[1]).Equal(model.StatusChange{Handle: "worker", From: "Active", To: "Previous"})

	gt.Array(t, chat.roleWrites["Previous"]).Equal([]string{"alum", "worker"})
	gt.Array(t, chat.roleWrites["Active"]).Equal([]string{"newbie"})
	gt.Array(t, chat.roleWrites["Incoming"]).Equal([]string{})
}

func TestPromoteStatusesNeverDoublePromotes(t *testing.T) {
	// "worker" is in both Incoming and Active: one pass moves the Active
	// membership to Previous and the Incoming membership to Active, but the
	// handle cannot skip from Incoming to Previous.
	chat := statusChat(map[string][]model.ChatMember{
		"Incoming": {{Handle: "worker"}},
		"Active":   {{Handle: "worker"}},
		"Previous": {},
	})

	uc := usecase.New(usecase.WithChat(chat))

	result, err := uc.PromoteStatuses(context.Background(), false)
	gt.NoError(t, err).Required()

	gt.Array(t, result.Changes).Length(2)
	gt.Array(t, chat.roleWrites["Previous"]).Equal([]string{"worker"})
	gt.Array(t, chat.roleWrites["Active"]).Equal([]string{"worker"})
}

func TestPromoteStatusesLeavesPreviousMembersAlone(t *testing.T) {
	chat := statusChat(map[string][]model.ChatMember{
		"Incoming": {{Handle: "alum"}},
		"Active":   {{Handle: "alum"}},
		"Previous": {{Handle: "alum"}},
	})

	uc := usecase.New(usecase.WithChat(chat))

	result, err := uc.PromoteStatuses(context.Background(), false)
	gt.NoError(t, err).Required()

	gt.Array(t, result.Changes).Length(0)
	gt.Value(t, len(chat.roleWrites)).Equal(0)
}

func TestPromoteStatusesDryRun(t *testing.T) {
	chat := statusChat(map[string][]model.ChatMember{
		"Incoming": {{Handle: "newbie"}},
		"Active":   {},
		"Previous": {},
	})

	uc := usecase.New(usecase.WithChat(chat))

	result, err := uc.PromoteStatuses(context.Background(), true)
	gt.NoError(t, err).Required()

	gt.Array(t, result.Changes).Length(1)
	gt.Value(t, len(chat.roleWrites)).Equal(0)
}

func TestPromoteStatusesMissingRole(t *testing.T) {
	chat := statusChat(map[string][]model.ChatMember{
		"Incoming": {},
		"Active":   {},
		// no Previous role
	})

	uc := usecase.New(usecase.WithChat(chat))

	_, err := uc.PromoteStatuses(context.Background(), false)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrRoleNotFound)).True()
}

func TestPromoteStatusesRequiresThreeRoles(t *testing.T) {
	uc := usecase.New(
		usecase.WithChat(&chatMock{}),
		usecase.WithStatusRoles([]string{"Only", "Two"}),
	)

	_, err := uc.PromoteStatuses(context.Background(), false)
	gt.Error(t, err)
}
