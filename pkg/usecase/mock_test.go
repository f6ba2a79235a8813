package usecase_test

import (
	"context"

	"github.com/electrium-mobility/rolesync/pkg/domain/interfaces"
	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/domain/types"
)

type chatMock struct {
	listRoles      func(ctx context.Context) ([]model.ChatRole, error)
	getRoleHolders func(ctx context.Context, roleName string) ([]model.ChatMember, bool, error)
	listMembers    func(ctx context.Context) ([]model.ChatMember, error)
	setRoleHolders func(ctx context.Context, roleName string, handles []string) error
	postReport     func(ctx context.Context, blocks []string) error

	posted     [][]string
	roleWrites map[string][]string
}

func (x *chatMock) ListRoles(ctx context.Context) ([]model.ChatRole, error) {
	return x.listRoles(ctx)
}

func (x *chatMock) GetRoleHolders(ctx context.Context, roleName string) ([]model.ChatMember, bool, error) {
	return x.getRoleHolders(ctx, roleName)
}

func (x *chatMock) ListMembers(ctx context.Context) ([]model.ChatMember, error) {
	return x.listMembers(ctx)
}

func (x *chatMock) SetRoleHolders(ctx context.Context, roleName string, handles []string) error {
	if x.roleWrites == nil {
		x.roleWrites = map[string][]string{}
	}
	x.roleWrites[roleName] = handles
	if x.setRoleHolders != nil {
		return x.setRoleHolders(ctx, roleName, handles)
	}
	return nil
}

func (x *chatMock) PostReport(ctx context.Context, blocks []string) error {
	x.posted = append(x.posted, blocks)
	if x.postReport != nil {
		return x.postReport(ctx, blocks)
	}
	return nil
}

type directoryMock struct {
	listUsers   func(ctx context.Context) ([]*model.DirectoryUser, error)
	listGroups  func(ctx context.Context) ([]model.DirectoryGroup, error)
	createGroup func(ctx context.Context, name, description string) (*model.DirectoryGroup, error)
	addUser     func(ctx context.Context, userID types.UserID, groupID types.GroupID) (*interfaces.MutationResponse, error)
	removeUser  func(ctx context.Context, userID types.UserID, groupID types.GroupID) (*interfaces.MutationResponse, error)

	addCalls    int
	createCalls int
}

func (x *directoryMock) ListUsers(ctx context.Context) ([]*model.DirectoryUser, error) {
	return x.listUsers(ctx)
}

func (x *directoryMock) ListGroups(ctx context.Context) ([]model.DirectoryGroup, error) {
	return x.listGroups(ctx)
}

func (x *directoryMock) CreateGroup(ctx context.Context, name, description string) (*model.DirectoryGroup, error) {
	x.createCalls++
	return x.createGroup(ctx, name, description)
}

func (x *directoryMock) AddUserToGroup(ctx context.Context, userID types.UserID, groupID types.GroupID) (*interfaces.MutationResponse, error) {
	x.addCalls++
	return x.addUser(ctx, userID, groupID)
}

func (x *directoryMock) RemoveUserFromGroup(ctx context.Context, userID types.UserID, groupID types.GroupID) (*interfaces.MutationResponse, error) {
	return x.removeUser(ctx, userID, groupID)
}

type rosterMock struct {
	listWorksheets func(ctx context.Context) ([]string, error)
	listRecords    func(ctx context.Context, worksheet string) ([]model.RosterRecord, error)
}

func (x *rosterMock) ListWorksheets(ctx context.Context) ([]string, error) {
	return x.listWorksheets(ctx)
}

func (x *rosterMock) ListRecords(ctx context.Context, worksheet string) ([]model.RosterRecord, error) {
	return x.listRecords(ctx, worksheet)
}
