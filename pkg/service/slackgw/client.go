package slackgw

import (
	"context"
	"strings"

	"github.com/electrium-mobility/rolesync/pkg/domain/interfaces"
	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// client implements interfaces.ChatGateway over Slack user groups.
// A "role" is a user group; role holders are its members.
type client struct {
	api           *slack.Client
	reportChannel string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithReportChannel sets the channel that receives sync reports
func WithReportChannel(channelID string) Option {
	return func(c *client) {
		c.reportChannel = channelID
	}
}

// New creates a new chat gateway with the provided bot token
func New(token string, opts ...Option) (interfaces.ChatGateway, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	c := &client{
		api: slack.New(token),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ListRoles retrieves all user groups in the workspace.
func (c *client) ListRoles(ctx context.Context) ([]model.ChatRole, error) {
	groups, err := c.api.GetUserGroupsContext(ctx, slack.GetUserGroupsOptionIncludeCount(true))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list user groups", goerr.T(types.ErrTagUpstream))
	}

	roles := make([]model.ChatRole, 0, len(groups))
	for _, g := range groups {
		roles = append(roles, model.ChatRole{
			ID:          g.ID,
			Name:        g.Name,
			MemberCount: g.UserCount,
		})
	}

	return roles, nil
}

// GetRoleHolders retrieves the members of the named user group. The name is
// matched case-insensitively against both the group name and its handle.
func (c *client) GetRoleHolders(ctx context.Context, roleName string) ([]model.ChatMember, bool, error) {
	group, ok, err := c.findRole(ctx, roleName)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	memberIDs, err := c.api.GetUserGroupMembersContext(ctx, group.ID)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to get role holders",
			goerr.V("role", roleName), goerr.T(types.ErrTagUpstream))
	}

	byID, err := c.usersByID(ctx)
	if err != nil {
		return nil, false, err
	}

	members := make([]model.ChatMember, 0, len(memberIDs))
	for _, id := range memberIDs {
		u, ok := byID[id]
		if !ok {
			continue // deleted or bot account still referenced by the group
		}
		members = append(members, u)
	}

	return members, true, nil
}

// ListMembers retrieves all human members of the workspace.
func (c *client) ListMembers(ctx context.Context) ([]model.ChatMember, error) {
	users, err := c.api.GetUsersContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users", goerr.T(types.ErrTagUpstream))
	}

	members := make([]model.ChatMember, 0, len(users))
	for _, u := range users {
		if u.Deleted || u.IsBot {
			continue
		}
		members = append(members, toMember(u))
	}

	return members, nil
}

// SetRoleHolders replaces the member set of the named user group.
func (c *client) SetRoleHolders(ctx context.Context, roleName string, handles []string) error {
	group, ok, err := c.findRole(ctx, roleName)
	if err != nil {
		return err
	}
	if !ok {
		return goerr.New("role not found", goerr.V("role", roleName))
	}

	users, err := c.api.GetUsersContext(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list users", goerr.T(types.ErrTagUpstream))
	}
	idByHandle := make(map[string]string, len(users))
	for _, u := range users {
		if u.Deleted || u.IsBot {
			continue
		}
		idByHandle[strings.ToLower(u.Name)] = u.ID
	}

	ids := make([]string, 0, len(handles))
	for _, h := range handles {
		id, ok := idByHandle[strings.ToLower(h)]
		if !ok {
			return goerr.New("unknown member handle", goerr.V("handle", h), goerr.V("role", roleName))
		}
		ids = append(ids, id)
	}

	if _, err := c.api.UpdateUserGroupMembersContext(ctx, group.ID, strings.Join(ids, ",")); err != nil {
		return goerr.Wrap(err, "failed to update role members",
			goerr.V("role", roleName), goerr.V("count", len(ids)), goerr.T(types.ErrTagUpstream))
	}

	return nil
}

// PostReport posts report blocks to the configured report channel.
func (c *client) PostReport(ctx context.Context, blocks []string) error {
	if c.reportChannel == "" {
		return goerr.New("report channel is not configured")
	}

	for _, block := range blocks {
		_, _, err := c.api.PostMessageContext(ctx, c.reportChannel,
			slack.MsgOptionText(block, false))
		if err != nil {
			return goerr.Wrap(err, "failed to post report message",
				goerr.V("channel", c.reportChannel), goerr.T(types.ErrTagUpstream))
		}
	}

	return nil
}

func (c *client) findRole(ctx context.Context, roleName string) (*slack.UserGroup, bool, error) {
	groups, err := c.api.GetUserGroupsContext(ctx)
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to list user groups", goerr.T(types.ErrTagUpstream))
	}

	for i := range groups {
		if strings.EqualFold(groups[i].Name, roleName) || strings.EqualFold(groups[i].Handle, roleName) {
			return &groups[i], true, nil
		}
	}

	return nil, false, nil
}

func (c *client) usersByID(ctx context.Context) (map[string]model.ChatMember, error) {
	users, err := c.api.GetUsersContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users", goerr.T(types.ErrTagUpstream))
	}

	byID := make(map[string]model.ChatMember, len(users))
	for _, u := range users {
		if u.Deleted || u.IsBot {
			continue
		}
		byID[u.ID] = toMember(u)
	}

	return byID, nil
}

func toMember(u slack.User) model.ChatMember {
	display := u.Profile.DisplayName
	if display == "" {
		display = u.RealName
	}
	return model.ChatMember{
		Handle:      u.Name,
		DisplayName: display,
	}
}
