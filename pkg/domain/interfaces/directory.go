package interfaces

import (
	"context"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/domain/types"
)

// MutationResponse is the raw result of a directory mutation call. The
// directory API signals "already a member" through free-text error payloads
// rather than structured codes, so the raw body is surfaced for
// classification instead of being interpreted here.
type MutationResponse struct {
	OK   bool   // transport-level success (HTTP 2xx with a parseable body)
	Body string // raw response body, empty on transport failure
}

// DirectoryGateway provides access to the directory service's users and
// groups. Listing calls aggregate all pages before returning.
type DirectoryGateway interface {
	// ListUsers retrieves all user records, including group memberships.
	ListUsers(ctx context.Context) ([]*model.DirectoryUser, error)

	// ListGroups retrieves all groups.
	ListGroups(ctx context.Context) ([]model.DirectoryGroup, error)

	// CreateGroup creates a group with the given name and description and
	// returns the new group.
	CreateGroup(ctx context.Context, name, description string) (*model.DirectoryGroup, error)

	// AddUserToGroup adds a user to a group. A duplicate add is reported
	// through the response body, not an error.
	AddUserToGroup(ctx context.Context, userID types.UserID, groupID types.GroupID) (*MutationResponse, error)

	// RemoveUserFromGroup removes a user from a group.
	RemoveUserFromGroup(ctx context.Context, userID types.UserID, groupID types.GroupID) (*MutationResponse, error)
}
