// Package history reconstructs a wallet's transaction history by scanning
// events emitted by the asset, campaign and payout manager instances that
// belong to one issuer, and merging the matches into a single chronological
// feed. Nothing is cached; every call re-derives the feed from the chain.
package history

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Kind tags the origin of a transaction record. Values match the labels the
// platform frontend expects.
type Kind string

const (
	KindTokenTransfer    Kind = "TOKEN-TRANSFER"
	KindInvest           Kind = "INVEST"
	KindCancelInvestment Kind = "CANCEL-INVESTMENT"
	KindClaimTokens      Kind = "CLAIM-TOKENS"
	KindRevenueShare     Kind = "REVENUE-SHARE"
)

// Record is one reconstructed wallet transaction, derived from exactly one
// emitted event. Amounts are kept at full precision.
type Record struct {
	Kind        Kind           `json:"kind"`
	From        common.Address `json:"from"`
	To          common.Address `json:"to"`
	Amount      *big.Int       `json:"amount"`
	TokenAmount *big.Int       `json:"tokenAmount,omitempty"`
	Asset       common.Address `json:"asset,omitempty"`
	PayoutID    *big.Int       `json:"payoutId,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	BlockNumber uint64         `json:"blockNumber"`
	LogIndex    uint           `json:"logIndex"`
	TxHash      common.Hash    `json:"txHash"`
}

// InstanceSet enumerates the contract instances of one issuer, grouped by
// family. Produced by instance discovery, consumed by the scanner.
type InstanceSet struct {
	Assets         []common.Address
	Campaigns      []common.Address
	PayoutManagers []common.Address
}

// InstanceFailure identifies one instance query that failed during a scan.
type InstanceFailure struct {
	Instance common.Address
	Event    string
	Err      error
}

// PartialError reports instance queries that failed while the rest of the
// scan completed. The successful portion of the result is still returned
// alongside it.
type PartialError struct {
	Failures []InstanceFailure
}

func (e *PartialError) Error() string {
	first := e.Failures[0]
	return fmt.Sprintf("history scan incomplete: %d queries failed, first %s on %s: %v",
		len(e.Failures), first.Event, first.Instance.Hex(), first.Err)
}
