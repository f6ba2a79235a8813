package model

// StatusSyncResult aggregates one roster-driven status sync pass.
type StatusSyncResult struct {
	// Assigned lists members whose status role changed to the roster
	// value. From is empty when the member held no status role before.
	Assigned []StatusChange

	// AlreadyCurrent counts members whose chat status already matched.
	AlreadyCurrent int

	// Missing lists roster usernames with no chat counterpart.
	Missing []string

	// UnknownStatus lists roster usernames whose status column is not a
	// recognized status role.
	UnknownStatus []string
}
