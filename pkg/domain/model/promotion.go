package model

// StatusChange records one member's movement in the status promotion
// cycle.
type StatusChange struct {
	Handle string
	From   string
	To     string
}

// PromotionResult aggregates one promotion pass.
type PromotionResult struct {
	Changes []StatusChange
}
