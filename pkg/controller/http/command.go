package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/electrium-mobility/rolesync/pkg/usecase"
	"github.com/electrium-mobility/rolesync/pkg/utils/async"
	"github.com/electrium-mobility/rolesync/pkg/utils/errutil"
	"github.com/electrium-mobility/rolesync/pkg/utils/logging"
)

const commandUsage = "usage: sync [dry-run] | mappings | reload | roles | groups | audit"

// CommandHandler serves the /rolesync slash command. Slow subcommands
// acknowledge immediately and post their results to the report channel,
// staying inside Slack's three second response window.
type CommandHandler struct {
	uc *usecase.UseCases
}

func NewCommandHandler(uc *usecase.UseCases) *CommandHandler {
	return &CommandHandler{uc: uc}
}

func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slash command"), http.StatusBadRequest)
		return
	}

	args := strings.Fields(cmd.Text)
	sub := ""
	if len(args) > 0 {
		sub = strings.ToLower(args[0])
	}

	logging.From(ctx).Info("slash command received",
		"command", cmd.Command, "subcommand", sub, "user", cmd.UserName)

	switch sub {
	case "sync":
		dryRun := hasArg(args[1:], "dry-run")
		h.dispatch(ctx, "sync", func(ctx context.Context) error {
			if err := h.uc.ReloadMappings(ctx); err != nil {
				_ = errutil.Handle(ctx, err, "failed to reload mappings before sync")
			}
			return h.uc.RunFullSyncAndReport(ctx, dryRun)
		})
		if dryRun {
			respond(ctx, w, "Starting role sync (dry run). Results will be posted to the report channel.")
			return
		}
		respond(ctx, w, "Starting role sync. Results will be posted to the report channel.")

	case "mappings":
		respond(ctx, w, h.renderMappings())

	case "reload":
		if err := h.uc.ReloadMappings(ctx); err != nil {
			respond(ctx, w, fmt.Sprintf("Reload failed, running with no mappings: %s", err))
			return
		}
		respond(ctx, w, fmt.Sprintf("Reloaded %d role mappings.", h.uc.Mappings().Len()))

	case "roles":
		h.dispatch(ctx, "roles", func(ctx context.Context) error {
			roles, err := h.uc.ListChatRoles(ctx)
			if err != nil {
				return err
			}
			lines := []string{fmt.Sprintf("Chat roles (%d):", len(roles))}
			for _, role := range roles {
				lines = append(lines, fmt.Sprintf("%s (%d members)", role.Name, role.MemberCount))
			}
			return h.uc.PostReport(ctx, usecase.ChunkLines(lines, h.uc.ReportSizeLimit()))
		})
		respond(ctx, w, "Fetching chat roles...")

	case "groups":
		h.dispatch(ctx, "groups", func(ctx context.Context) error {
			groups, err := h.uc.ListDirectoryGroups(ctx)
			if err != nil {
				return err
			}
			lines := []string{fmt.Sprintf("Directory groups (%d):", len(groups))}
			for _, g := range groups {
				lines = append(lines, fmt.Sprintf("%s (%d members)", g.Name, g.MemberCount))
			}
			return h.uc.PostReport(ctx, usecase.ChunkLines(lines, h.uc.ReportSizeLimit()))
		})
		respond(ctx, w, "Fetching directory groups...")

	case "audit":
		h.dispatch(ctx, "audit", func(ctx context.Context) error {
			audit, err := h.uc.AuditRoster(ctx)
			if err != nil {
				return err
			}
			return h.uc.PostReport(ctx, usecase.RenderAudit(audit, h.uc.ReportSizeLimit()))
		})
		respond(ctx, w, "Starting roster audit. Results will be posted to the report channel.")

	default:
		respond(ctx, w, commandUsage)
	}
}

// dispatch runs a subcommand in the background, reporting failures to the
// log rather than the (already closed) HTTP response.
func (h *CommandHandler) dispatch(ctx context.Context, name string, fn func(context.Context) error) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return goerr.Wrap(err, "slash subcommand failed", goerr.V("subcommand", name))
		}
		return nil
	})
}

func (h *CommandHandler) renderMappings() string {
	set := h.uc.Mappings()
	if set.Len() == 0 {
		return "No role mappings configured."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Role mappings (%d):\n", set.Len())
	for _, cat := range set.Categories() {
		fmt.Fprintf(&b, "%s:\n", cat.Name)
		for _, m := range cat.Mappings {
			fmt.Fprintf(&b, "  %s -> %s\n", m.RoleName, m.GroupName)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func hasArg(args []string, name string) bool {
	for _, a := range args {
		if strings.EqualFold(strings.TrimLeft(a, "-"), name) {
			return true
		}
	}
	return false
}

// respond writes an ephemeral message back to the invoking user.
func respond(ctx context.Context, w http.ResponseWriter, text string) {
	resp := map[string]string{
		"response_type": "ephemeral",
		"text":          text,
	}
	data, err := json.Marshal(resp)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal command response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data) //nolint:errcheck // header already committed
}
