package model

import "github.com/shopspring/decimal"

// InsiderTransaction is one raw insider filing.
type InsiderTransaction struct {
	Name      string
	Ownership string // "D" direct, "I" indirect
	Value     Value
	Text      string
}

// OwnershipDirect marks shares held directly by the insider.
const OwnershipDirect = "D"

// InsiderActivitySummary aggregates direct insider transactions.
// When Available is false every numeric field renders as N/A.
type InsiderActivitySummary struct {
	Available  bool
	Buys       int
	Sells      int
	NetValue   decimal.Decimal
	Executives []string
}

// HolderRecord is one institutional holder position.
type HolderRecord struct {
	Holder string
	Shares int64
}

// OwnershipTier records which source produced an InstitutionalSummary.
type OwnershipTier string

const (
	TierHolderList  OwnershipTier = "HOLDER_LIST"
	TierHeldPercent OwnershipTier = "HELD_PERCENT"
)

// InstitutionalSummary is produced by exactly one tier: either the holder
// list (count, total shares, top holders) or the aggregate held percentage.
type InstitutionalSummary struct {
	Tier        OwnershipTier
	HolderCount Value
	TotalShares Value
	HeldPercent Value // percent, e.g. 61.5
	TopHolders  []string
}
