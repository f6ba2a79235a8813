package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
)

// ListChatRoles returns the chat platform's roles.
func (uc *UseCases) ListChatRoles(ctx context.Context) ([]model.ChatRole, error) {
	roles, err := uc.chat.ListRoles(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list chat roles")
	}
	return roles, nil
}

// ListDirectoryGroups returns the directory's groups.
func (uc *UseCases) ListDirectoryGroups(ctx context.Context) ([]model.DirectoryGroup, error) {
	groups, err := uc.directory.ListGroups(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list directory groups")
	}
	return groups, nil
}

// PostReport sends pre-rendered report blocks to the chat report channel.
func (uc *UseCases) PostReport(ctx context.Context, blocks []string) error {
	if err := uc.chat.PostReport(ctx, blocks); err != nil {
		return goerr.Wrap(err, "failed to post report")
	}
	return nil
}

// ReportSizeLimit returns the configured report chunk size.
func (uc *UseCases) ReportSizeLimit() int {
	return uc.reportLimit
}
