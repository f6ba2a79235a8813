package interfaces

import (
	"context"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
)

// ChatGateway provides access to the chat workspace's role system.
type ChatGateway interface {
	// ListRoles retrieves all roles in the workspace.
	ListRoles(ctx context.Context) ([]model.ChatRole, error)

	// GetRoleHolders retrieves the members currently holding the named
	// role. Returns ok=false when the role does not exist.
	GetRoleHolders(ctx context.Context, roleName string) (members []model.ChatMember, ok bool, err error)

	// ListMembers retrieves all human members of the workspace.
	ListMembers(ctx context.Context) ([]model.ChatMember, error)

	// SetRoleHolders replaces the member set of the named role. Used by the
	// status promotion cycle.
	SetRoleHolders(ctx context.Context, roleName string, handles []string) error

	// PostReport posts human-readable report blocks to the configured
	// report channel, one message per block.
	PostReport(ctx context.Context, blocks []string) error
}
