package outline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/electrium-mobility/rolesync/pkg/domain/interfaces"
	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/domain/types"
	"github.com/electrium-mobility/rolesync/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultPageSize is the page size used for paginated list endpoints.
const DefaultPageSize = 25

// client implements interfaces.DirectoryGateway against the Outline API.
type client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	pageSize   int
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient sets the HTTP client used for API calls
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithPageSize sets the page size for paginated list endpoints
func WithPageSize(n int) Option {
	return func(c *client) {
		c.pageSize = n
	}
}

// New creates a new directory gateway for the given Outline instance.
// baseURL is the API root (e.g. "https://docs.example.com/api").
func New(baseURL, token string, opts ...Option) (interfaces.DirectoryGateway, error) {
	if baseURL == "" {
		return nil, goerr.New("Outline API URL is required")
	}
	if token == "" {
		return nil, goerr.New("Outline API token is required")
	}

	c := &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: http.DefaultClient,
		pageSize:   DefaultPageSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// post issues one API call and returns the decoded envelope plus the raw
// response body. A non-2xx status is an error; body decoding failures are
// not, because mutation endpoints return error-shaped payloads that the
// caller classifies from the raw body.
func (c *client) post(ctx context.Context, endpoint string, payload any) (*envelope, string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to encode request", goerr.V("endpoint", endpoint))
	}

	url := c.baseURL + "/" + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to build request", goerr.V("endpoint", endpoint))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", goerr.Wrap(err, "directory request failed", goerr.V("endpoint", endpoint), goerr.T(types.ErrTagUpstream))
	}
	defer safe.Close(ctx, resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to read directory response", goerr.V("endpoint", endpoint), goerr.T(types.ErrTagUpstream))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, string(raw), goerr.New("directory returned non-success status",
			goerr.V("endpoint", endpoint),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", truncate(string(raw), 500)),
			goerr.T(types.ErrTagUpstream),
		)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Tolerated for mutation endpoints; list callers check env.Data.
		return &envelope{}, string(raw), nil
	}

	return &env, string(raw), nil
}

// ListUsers retrieves all users with their group memberships. Users are
// paginated until the reported total is reached or no next page remains;
// memberships are joined in from each group's membership list.
func (c *client) ListUsers(ctx context.Context) ([]*model.DirectoryUser, error) {
	var users []*model.DirectoryUser
	byID := make(map[types.UserID]*model.DirectoryUser)

	offset := 0
	for {
		env, _, err := c.post(ctx, "users.list", map[string]any{
			"offset": offset,
			"limit":  c.pageSize,
		})
		if err != nil {
			return nil, err
		}

		page, err := unwrapList[wireUser](env.Data, "users")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to decode user list", goerr.T(types.ErrTagUpstream))
		}
		if len(page) == 0 {
			break
		}

		for _, u := range page {
			du := &model.DirectoryUser{
				ID:    types.UserID(u.ID),
				Name:  u.Name,
				Email: u.Email,
			}
			users = append(users, du)
			byID[du.ID] = du
		}

		if env.Pagination == nil {
			break
		}
		if env.Pagination.Total > 0 && len(users) >= env.Pagination.Total {
			break
		}
		if env.Pagination.NextPath == "" {
			break
		}
		offset += c.pageSize
	}

	groups, err := c.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		memberIDs, err := c.listGroupMembers(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range memberIDs {
			if du, ok := byID[id]; ok {
				du.Groups = append(du.Groups, g.ID)
			}
		}
	}

	return users, nil
}

// ListGroups retrieves all groups.
func (c *client) ListGroups(ctx context.Context) ([]model.DirectoryGroup, error) {
	env, _, err := c.post(ctx, "groups.list", map[string]any{})
	if err != nil {
		return nil, err
	}

	wire, err := unwrapList[wireGroup](env.Data, "groups")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode group list", goerr.T(types.ErrTagUpstream))
	}

	groups := make([]model.DirectoryGroup, 0, len(wire))
	for _, g := range wire {
		groups = append(groups, model.DirectoryGroup{
			ID:          types.GroupID(g.ID),
			Name:        g.Name,
			MemberCount: g.MemberCount,
		})
	}

	return groups, nil
}

// listGroupMembers retrieves the member user IDs of one group.
func (c *client) listGroupMembers(ctx context.Context, groupID types.GroupID) ([]types.UserID, error) {
	var ids []types.UserID

	offset := 0
	for {
		env, _, err := c.post(ctx, "groups.memberships", map[string]any{
			"id":     groupID.String(),
			"offset": offset,
			"limit":  c.pageSize,
		})
		if err != nil {
			return nil, err
		}

		memberships, err := unwrapList[wireMembership](env.Data, "groupMemberships")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to decode group memberships",
				goerr.V("group_id", groupID), goerr.T(types.ErrTagUpstream))
		}
		if len(memberships) == 0 {
			// Some deployments nest the list under "users" instead.
			wireUsers, err := unwrapList[wireUser](env.Data, "users")
			if err == nil {
				for _, u := range wireUsers {
					ids = append(ids, types.UserID(u.ID))
				}
			}
			if len(wireUsers) == 0 {
				break
			}
		}

		for _, m := range memberships {
			ids = append(ids, types.UserID(m.User.ID))
		}

		if env.Pagination == nil || env.Pagination.NextPath == "" {
			break
		}
		if env.Pagination.Total > 0 && len(ids) >= env.Pagination.Total {
			break
		}
		offset += c.pageSize
	}

	return ids, nil
}

// CreateGroup creates a group and returns it.
func (c *client) CreateGroup(ctx context.Context, name, description string) (*model.DirectoryGroup, error) {
	payload := map[string]any{"name": name}
	if description != "" {
		payload["description"] = description
	}

	env, _, err := c.post(ctx, "groups.create", payload)
	if err != nil {
		return nil, err
	}

	var g wireGroup
	if err := json.Unmarshal(env.Data, &g); err != nil || g.ID == "" {
		return nil, goerr.New("group creation returned no group",
			goerr.V("name", name), goerr.T(types.ErrTagUpstream))
	}

	return &model.DirectoryGroup{
		ID:   types.GroupID(g.ID),
		Name: g.Name,
	}, nil
}

// AddUserToGroup adds a user to a group. The raw body is returned so the
// caller can classify duplicate-membership responses.
func (c *client) AddUserToGroup(ctx context.Context, userID types.UserID, groupID types.GroupID) (*interfaces.MutationResponse, error) {
	return c.mutateMembership(ctx, "groups.add_user", userID, groupID)
}

// RemoveUserFromGroup removes a user from a group.
func (c *client) RemoveUserFromGroup(ctx context.Context, userID types.UserID, groupID types.GroupID) (*interfaces.MutationResponse, error) {
	return c.mutateMembership(ctx, "groups.remove_user", userID, groupID)
}

func (c *client) mutateMembership(ctx context.Context, endpoint string, userID types.UserID, groupID types.GroupID) (*interfaces.MutationResponse, error) {
	env, raw, err := c.post(ctx, endpoint, map[string]any{
		"id":     groupID.String(),
		"userId": userID.String(),
	})
	if err != nil {
		// A non-2xx body still reaches the classifier; the API reports
		// duplicate membership as an error-shaped payload.
		if raw != "" {
			return &interfaces.MutationResponse{OK: false, Body: raw}, nil
		}
		return nil, err
	}

	ok := true
	if env.Success != nil && !*env.Success {
		ok = false
	}
	if env.Error != "" {
		ok = false
	}

	return &interfaces.MutationResponse{OK: ok, Body: raw}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
