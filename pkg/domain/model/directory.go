package model

import "github.com/electrium-mobility/rolesync/pkg/domain/types"

// DirectoryUser represents a user record in the directory service.
// Name and Email are free text maintained by the users themselves and are
// only trusted for fuzzy matching; ID is the stable join key.
type DirectoryUser struct {
	ID     types.UserID
	Name   string
	Email  string // empty if not exposed
	Groups []types.GroupID
}

// InGroup reports whether the user is already a member of the given group.
func (x *DirectoryUser) InGroup(id types.GroupID) bool {
	for _, g := range x.Groups {
		if g == id {
			return true
		}
	}
	return false
}

// DirectoryGroup represents a group in the directory service. Name is
// treated as unique for lookup; if the directory allows duplicates, the
// first listed group wins.
type DirectoryGroup struct {
	ID          types.GroupID
	Name        string
	MemberCount int
}
