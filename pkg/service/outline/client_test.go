package outline_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/electrium-mobility/rolesync/pkg/domain/types"
	"github.com/electrium-mobility/rolesync/pkg/service/outline"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*httptest.Server, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	return srv, srv.Close
}

func TestListUsersPaginates(t *testing.T) {
	var offsets []int

	srv, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users.list":
			var req struct {
				Offset int `json:"offset"`
				Limit  int `json:"limit"`
			}
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			offsets = append(offsets, req.Offset)

			if req.Offset == 0 {
				fmt.Fprint(w, `{"ok": true,
					"data": [{"id": "u1", "name": "Alice"}, {"id": "u2", "name": "Bob"}],
					"pagination": {"total": 3, "limit": 2, "offset": 0, "nextPath": "/api/users.list?offset=2"}}`)
				return
			}
			fmt.Fprint(w, `{"ok": true,
				"data": [{"id": "u3", "name": "Carol"}],
				"pagination": {"total": 3, "limit": 2, "offset": 2, "nextPath": "/api/users.list?offset=4"}}`)
		case "/groups.list":
			fmt.Fprint(w, `{"ok": true, "data": []}`)
		default:
			t.Errorf("unexpected endpoint: %s", r.URL.Path)
		}
	})
	defer closeFn()

	gw, err := outline.New(srv.URL, "token", outline.WithPageSize(2))
	gt.NoError(t, err).Required()

	users, err := gw.ListUsers(context.Background())
	gt.NoError(t, err).Required()

	gt.Array(t, users).Length(3)
	gt.Array(t, offsets).Equal([]int{0, 2})
}

func TestListUsersJoinsGroupMemberships(t *testing.T) {
	srv, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users.list":
			// nested envelope shape
			fmt.Fprint(w, `{"ok": true, "data": {"users": [
				{"id": "u1", "name": "Alice", "email": "alice@example.com"},
				{"id": "u2", "name": "Bob"}]}}`)
		case "/groups.list":
			fmt.Fprint(w, `{"ok": true, "data": {"groups": [
				{"id": "g1", "name": "web-team", "memberCount": 1}]}}`)
		case "/groups.memberships":
			fmt.Fprint(w, `{"ok": true, "data": {"groupMemberships": [
				{"user": {"id": "u1", "name": "Alice"}}]}}`)
		default:
			t.Errorf("unexpected endpoint: %s", r.URL.Path)
		}
	})
	defer closeFn()

	gw, err := outline.New(srv.URL, "token")
	gt.NoError(t, err).Required()

	users, err := gw.ListUsers(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, users).Length(2).Required()

	byID := map[types.UserID][]types.GroupID{}
	for _, u := range users {
		byID[u.ID] = u.Groups
	}
	gt.Array(t, byID["u1"]).Equal([]types.GroupID{"g1"})
	gt.Array(t, byID["u2"]).Length(0)
	gt.Bool(t, users[0].InGroup("g1") || users[1].InGroup("g1")).True()
}

func TestListGroupsFlatEnvelope(t *testing.T) {
	srv, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/groups.list")
		gt.Value(t, r.Header.Get("Authorization")).Equal("Bearer token")
		fmt.Fprint(w, `{"ok": true, "data": [
			{"id": "g1", "name": "web-team", "memberCount": 4},
			{"id": "g2", "name": "firmware", "memberCount": 2}]}`)
	})
	defer closeFn()

	gw, err := outline.New(srv.URL, "token")
	gt.NoError(t, err).Required()

	groups, err := gw.ListGroups(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, groups).Length(2).Required()
	gt.Value(t, groups[0].Name).Equal("web-team")
	gt.Value(t, groups[0].MemberCount).Equal(4)
}

func TestCreateGroup(t *testing.T) {
	srv, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/groups.create")
		var req map[string]string
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gt.Value(t, req["name"]).Equal("web-team")
		gt.Value(t, req["description"]).Equal("Auto-synced from role: Web Team")
		fmt.Fprint(w, `{"ok": true, "data": {"id": "g-new", "name": "web-team"}}`)
	})
	defer closeFn()

	gw, err := outline.New(srv.URL, "token")
	gt.NoError(t, err).Required()

	group, err := gw.CreateGroup(context.Background(), "web-team", "Auto-synced from role: Web Team")
	gt.NoError(t, err).Required()
	gt.Value(t, group.ID).Equal(types.GroupID("g-new"))
}

func TestAddUserToGroupSendsGroupAndUserIDs(t *testing.T) {
	srv, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/groups.add_user")
		var req map[string]string
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gt.Value(t, req["id"]).Equal("g1")
		gt.Value(t, req["userId"]).Equal("u1")
		fmt.Fprint(w, `{"ok": true, "success": true, "data": {}}`)
	})
	defer closeFn()

	gw, err := outline.New(srv.URL, "token")
	gt.NoError(t, err).Required()

	resp, err := gw.AddUserToGroup(context.Background(), "u1", "g1")
	gt.NoError(t, err).Required()
	gt.Bool(t, resp.OK).True()
}

func TestAddUserToGroupDuplicateBodySurvives(t *testing.T) {
	srv, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"ok": false, "error": "user is already a member of this group"}`)
	})
	defer closeFn()

	gw, err := outline.New(srv.URL, "token")
	gt.NoError(t, err).Required()

	// not an error: the raw body reaches the caller's classifier
	resp, err := gw.AddUserToGroup(context.Background(), "u1", "g1")
	gt.NoError(t, err).Required()
	gt.Bool(t, resp.OK).False()
	gt.String(t, resp.Body).Contains("already a member")
}

func TestMutationSuccessFalseMeansNotOK(t *testing.T) {
	srv, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok": false, "success": false, "error": "validation failed"}`)
	})
	defer closeFn()

	gw, err := outline.New(srv.URL, "token")
	gt.NoError(t, err).Required()

	resp, err := gw.RemoveUserFromGroup(context.Background(), "u1", "g1")
	gt.NoError(t, err).Required()
	gt.Bool(t, resp.OK).False()
}

func TestListUsersUpstreamError(t *testing.T) {
	srv, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `internal error`)
	})
	defer closeFn()

	gw, err := outline.New(srv.URL, "token")
	gt.NoError(t, err).Required()

	_, err = gw.ListUsers(context.Background())
	gt.Error(t, err)
}

func TestNewRequiresConfiguration(t *testing.T) {
	_, err := outline.New("", "token")
	gt.Error(t, err)

	_, err = outline.New("https://docs.example.com/api", "")
	gt.Error(t, err)
}
