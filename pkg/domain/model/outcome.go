package model

import "github.com/electrium-mobility/rolesync/pkg/domain/types"

// MatchResult is the outcome of running the identity matching cascade for
// one chat member. It is transient and never persisted.
type MatchResult struct {
	Matched  *DirectoryUser // nil when no strategy fired
	Strategy types.MatchStrategy
	Reason   string
}

// FailReason categorizes why a role holder could not be synced.
type FailReason string

const (
	FailNoMatch  FailReason = "no match found"
	FailMutation FailReason = "add to group failed"
)

// FailedMember pairs a role holder with the reason the sync failed for them.
type FailedMember struct {
	Member ChatMember
	Reason FailReason
}

// SyncOutcome aggregates the reconciliation result for one role mapping.
// Every role holder appears in exactly one of the three buckets.
type SyncOutcome struct {
	RoleName  string
	GroupName string

	Synced        []ChatMember
	AlreadyMember []ChatMember
	Failed        []FailedMember
}

// Total returns the number of role holders covered by this outcome.
func (x *SyncOutcome) Total() int {
	return len(x.Synced) + len(x.AlreadyMember) + len(x.Failed)
}

// MappingStatus describes how a mapping's reconciliation attempt ended.
type MappingStatus string

const (
	// MappingSynced means the mapping was reconciled (possibly with
	// per-member failures recorded in the outcome).
	MappingSynced MappingStatus = "synced"
	// MappingRoleNotFound means the configured role does not exist in the
	// chat workspace. Not a failure of the mapping.
	MappingRoleNotFound MappingStatus = "role not found"
	// MappingFailed means the mapping could not be reconciled at all
	// (group creation or an upstream fetch failed).
	MappingFailed MappingStatus = "failed"
)

// MappingResult is one mapping's entry in the full sync report.
type MappingResult struct {
	RoleName  string
	GroupName string
	Status    MappingStatus
	Outcome   *SyncOutcome // nil unless Status == MappingSynced
	Err       error        // nil unless Status == MappingFailed
}

// SyncReport is the aggregate of a full sync pass over all mappings.
type SyncReport struct {
	DryRun  bool
	Results []MappingResult
}
