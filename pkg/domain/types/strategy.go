package types

// MatchStrategy identifies which heuristic of the identity matching cascade
// produced a match. The numeric order is the cascade's evaluation order.
type MatchStrategy int

const (
	StrategyNone MatchStrategy = iota
	StrategyExactDisplayName
	StrategyPartialDisplayName
	StrategyEmailPrefixDisplayName
	StrategyExactHandle
	StrategyPartialHandle
	StrategyExactEmailPrefix
)

// String returns the strategy name used in diagnostics and reports.
func (x MatchStrategy) String() string {
	switch x {
	case StrategyExactDisplayName:
		return "exact_display_name"
	case StrategyPartialDisplayName:
		return "partial_display_name"
	case StrategyEmailPrefixDisplayName:
		return "email_prefix_display_name"
	case StrategyExactHandle:
		return "exact_handle"
	case StrategyPartialHandle:
		return "partial_handle"
	case StrategyExactEmailPrefix:
		return "exact_email_prefix"
	default:
		return "none"
	}
}
