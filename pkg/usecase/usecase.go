package usecase

import (
	"context"
	"sync/atomic"

	"github.com/electrium-mobility/rolesync/pkg/domain/interfaces"
	"github.com/electrium-mobility/rolesync/pkg/domain/model/config"
	"github.com/electrium-mobility/rolesync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// MappingLoader builds a fresh mapping snapshot from the backing
// configuration. On a missing or corrupt source it returns an empty (non
// nil) snapshot together with the error, so the caller can degrade to "no
// mappings" while still reporting the condition.
type MappingLoader func() (*config.MappingSet, error)

// UseCases wires the gateways and the mapping snapshot together. All
// external clients are interface-typed collaborators so tests substitute
// fakes.
type UseCases struct {
	chat      interfaces.ChatGateway
	directory interfaces.DirectoryGateway
	roster    interfaces.RosterGateway

	loadMappings MappingLoader
	mappings     atomic.Pointer[config.MappingSet]

	reportLimit int
	statusRoles []string
}

// DefaultStatusRoles is the membership status promotion chain, oldest
// first. Promote moves each member one step right.
var DefaultStatusRoles = []string{"Incoming", "Active", "Previous"}

type Option func(*UseCases)

func WithChat(gw interfaces.ChatGateway) Option {
	return func(uc *UseCases) {
		uc.chat = gw
	}
}

func WithDirectory(gw interfaces.DirectoryGateway) Option {
	return func(uc *UseCases) {
		uc.directory = gw
	}
}

func WithRoster(gw interfaces.RosterGateway) Option {
	return func(uc *UseCases) {
		uc.roster = gw
	}
}

func WithMappingLoader(loader MappingLoader) Option {
	return func(uc *UseCases) {
		uc.loadMappings = loader
	}
}

// WithReportSizeLimit overrides the report chunk ceiling.
func WithReportSizeLimit(n int) Option {
	return func(uc *UseCases) {
		uc.reportLimit = n
	}
}

// WithStatusRoles overrides the promotion chain.
func WithStatusRoles(roles []string) Option {
	return func(uc *UseCases) {
		uc.statusRoles = roles
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{
		reportLimit: defaultReportSizeLimit,
		statusRoles: DefaultStatusRoles,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.mappings.Store(config.NewMappingSet(nil, ""))

	return uc
}

// Mappings returns the current mapping snapshot. Never nil.
func (uc *UseCases) Mappings() *config.MappingSet {
	return uc.mappings.Load()
}

// ReloadMappings builds a new snapshot and swaps it in atomically. A load
// failure still swaps in whatever the loader produced (an empty set) so a
// broken config degrades to "no mappings" rather than stale state, and the
// error is returned for reporting.
func (uc *UseCases) ReloadMappings(ctx context.Context) error {
	if uc.loadMappings == nil {
		return goerr.New("mapping loader is not configured")
	}

	set, err := uc.loadMappings()
	if set == nil {
		set = config.NewMappingSet(nil, "")
	}
	uc.mappings.Store(set)

	if err != nil {
		logging.From(ctx).Warn("mapping configuration unavailable, continuing with no mappings",
			"error", err.Error())
		return err
	}

	logging.From(ctx).Info("loaded role mappings",
		"categories", len(set.Categories()), "entries", set.Len())
	return nil
}
