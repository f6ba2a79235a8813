package usecase

import (
	"fmt"
	"strings"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/domain/types"
)

// The identity matching cascade. Strategies run in order and the first one
// that accepts any candidate wins; ties within a strategy go to the first
// candidate in list order.
//
// Display-name strategies run before handle strategies because most
// directory accounts here were renamed to match chat display names. The
// ordering is a policy for this deployment, not a general algorithm; swap
// the slice to change it.
type matchStrategy struct {
	id     types.MatchStrategy
	accept func(member model.ChatMember, candidate *model.DirectoryUser) bool
}

var matchCascade = []matchStrategy{
	{types.StrategyExactDisplayName, matchExactDisplayName},
	{types.StrategyPartialDisplayName, matchPartialDisplayName},
	{types.StrategyEmailPrefixDisplayName, matchEmailPrefixDisplayName},
	{types.StrategyExactHandle, matchExactHandle},
	{types.StrategyPartialHandle, matchPartialHandle},
	{types.StrategyExactEmailPrefix, matchExactEmailPrefix},
}

// Match selects the best directory candidate for a chat member, or reports
// no match. Pure function, no I/O.
func Match(member model.ChatMember, candidates []*model.DirectoryUser) model.MatchResult {
	for _, s := range matchCascade {
		for _, c := range candidates {
			if s.accept(member, c) {
				return model.MatchResult{
					Matched:  c,
					Strategy: s.id,
					Reason:   fmt.Sprintf("matched %q via %s", c.Name, s.id),
				}
			}
		}
	}

	return model.MatchResult{
		Strategy: types.StrategyNone,
		Reason: fmt.Sprintf("no directory user matched handle %q / display name %q",
			member.Handle, member.DisplayName),
	}
}

func matchExactDisplayName(m model.ChatMember, c *model.DirectoryUser) bool {
	return m.DisplayName != "" && strings.EqualFold(m.DisplayName, c.Name)
}

func matchPartialDisplayName(m model.ChatMember, c *model.DirectoryUser) bool {
	return tokensOverlap(m.DisplayName, c.Name)
}

func matchEmailPrefixDisplayName(m model.ChatMember, c *model.DirectoryUser) bool {
	local := emailLocal(c.Email)
	if local == "" {
		return false
	}
	squashed := strings.ToLower(strings.ReplaceAll(m.DisplayName, " ", ""))
	if squashed == "" {
		return false
	}
	return strings.Contains(local, squashed) || strings.Contains(squashed, local)
}

func matchExactHandle(m model.ChatMember, c *model.DirectoryUser) bool {
	return m.Handle != "" && strings.EqualFold(m.Handle, c.Name)
}

func matchPartialHandle(m model.ChatMember, c *model.DirectoryUser) bool {
	return tokensOverlap(m.Handle, c.Name)
}

func matchExactEmailPrefix(m model.ChatMember, c *model.DirectoryUser) bool {
	local := emailLocal(c.Email)
	return local != "" && local == strings.ToLower(m.Handle)
}

// tokensOverlap splits both strings on whitespace and reports whether any
// token pair, both longer than 2 runes, is a substring of the other in
// either direction. Recall over precision: short common fragments are
// excluded only by the length guard.
func tokensOverlap(a, b string) bool {
	for _, ta := range strings.Fields(strings.ToLower(a)) {
		if len([]rune(ta)) <= 2 {
			continue
		}
		for _, tb := range strings.Fields(strings.ToLower(b)) {
			if len([]rune(tb)) <= 2 {
				continue
			}
			if strings.Contains(ta, tb) || strings.Contains(tb, ta) {
				return true
			}
		}
	}
	return false
}

// emailLocal returns the lowercased local part of an email address, or ""
// when the address has no "@".
func emailLocal(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return ""
	}
	return strings.ToLower(email[:at])
}
