package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/domain/types"
	"github.com/electrium-mobility/rolesync/pkg/usecase"
)

func TestMatchExactDisplayNameWinsOverPartial(t *testing.T) {
	member := model.ChatMember{Handle: "jsmith", DisplayName: "Jane Smith"}
	candidates := []*model.DirectoryUser{
		{ID: "u1", Name: "Smithers Jones"}, // partial overlap on "smith"
		{ID: "u2", Name: "jane smith"},     // exact, case-insensitive
	}

	result := usecase.Match(member, candidates)
	gt.Value(t, result.Matched).NotNil()
	gt.Value(t, result.Matched.ID).Equal(types.UserID("u2"))
	gt.Value(t, result.Strategy).Equal(types.StrategyExactDisplayName)
}

func TestMatchPartialDisplayName(t *testing.T) {
	member := model.ChatMember{Handle: "jsmith", DisplayName: "Jane Smith"}
	candidates := []*model.DirectoryUser{
		{ID: "u1", Name: "Robert Brown"},
		{ID: "u2", Name: "Smithson"},
	}

	result := usecase.Match(member, candidates)
	gt.Value(t, result.Matched).NotNil()
	gt.Value(t, result.Matched.ID).Equal(types.UserID("u2"))
	gt.Value(t, result.Strategy).Equal(types.StrategyPartialDisplayName)
}

func TestMatchShortTokensDoNotCount(t *testing.T) {
	// "Jo" is 2 runes, below the token length guard.
	member := model.ChatMember{Handle: "xx", DisplayName: "Jo Li"}
	candidates := []*model.DirectoryUser{
		{ID: "u1", Name: "Jo Anderson"},
	}

	result := usecase.Match(member, candidates)
	gt.Value(t, result.Matched).Nil()
	gt.Value(t, result.Strategy).Equal(types.StrategyNone)
}

func TestMatchEmailPrefixAgainstSquashedDisplayName(t *testing.T) {
	member := model.ChatMember{Handle: "zzz", DisplayName: "Ada Lovelace"}
	candidates := []*model.DirectoryUser{
		{ID: "u1", Name: "Someone Else", Email: "adalovelace@example.com"},
	}

	result := usecase.Match(member, candidates)
	gt.Value(t, result.Matched).NotNil()
	gt.Value(t, result.Matched.ID).Equal(types.UserID("u1"))
	gt.Value(t, result.Strategy).Equal(types.StrategyEmailPrefixDisplayName)
}

func TestMatchExactHandle(t *testing.T) {
	member := model.ChatMember{Handle: "wizard", DisplayName: ""}
	candidates := []*model.DirectoryUser{
		{ID: "u1", Name: "Wizard"},
	}

	result := usecase.Match(member, candidates)
	gt.Value(t, result.Matched).NotNil()
	gt.Value(t, result.Strategy).Equal(types.StrategyExactHandle)
}

func TestMatchPartialHandle(t *testing.T) {
	member := model.ChatMember{Handle: "wizardry", DisplayName: ""}
	candidates := []*model.DirectoryUser{
		{ID: "u1", Name: "wizard"},
	}

	result := usecase.Match(member, candidates)
	gt.Value(t, result.Matched).NotNil()
	gt.Value(t, result.Strategy).Equal(types.StrategyPartialHandle)
}

func TestMatchExactEmailPrefix(t *testing.T) {
	member := model.ChatMember{Handle: "grace", DisplayName: ""}
	candidates := []*model.DirectoryUser{
		{ID: "u1", Name: "Dr. Hopper", Email: "Grace@example.com"},
	}

	result := usecase.Match(member, candidates)
	gt.Value(t, result.Matched).NotNil()
	gt.Value(t, result.Strategy).Equal(types.StrategyExactEmailPrefix)
}

func TestMatchFirstCandidateBreaksTies(t *testing.T) {
	member := model.ChatMember{Handle: "x", DisplayName: "Sam Taylor"}
	candidates := []*model.DirectoryUser{
		{ID: "u1", Name: "Sam Taylor"},
		{ID: "u2", Name: "sam taylor"},
	}

	result := usecase.Match(member, candidates)
	gt.Value(t, result.Matched).NotNil()
	gt.Value(t, result.Matched.ID).Equal(types.UserID("u1"))
}

func TestMatchNoCandidates(t *testing.T) {
	member := model.ChatMember{Handle: "ghost", DisplayName: "Ghost"}

	result := usecase.Match(member, nil)
	gt.Value(t, result.Matched).Nil()
	gt.Value(t, result.Strategy).Equal(types.StrategyNone)
	gt.String(t, result.Reason).Contains("ghost")
}
