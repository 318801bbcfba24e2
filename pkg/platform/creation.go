package platform

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	apperrors "github.com/ampnet/tokenizer-middleware/pkg/app/errors"
)

// InstanceKind identifies a family of platform contract instances.
type InstanceKind string

const (
	KindIssuer        InstanceKind = "ISSUER"
	KindAsset         InstanceKind = "ASSET"
	KindCampaign      InstanceKind = "CAMPAIGN"
	KindPayoutManager InstanceKind = "PAYOUT_MANAGER"
)

// CreationRecord is the fact extracted from a factory creation event: which
// instance was created, by whom, and under which factory-assigned ID. Asset
// is set only for kinds created against an existing asset.
type CreationRecord struct {
	Kind      InstanceKind
	Instance  common.Address
	Owner     common.Address
	ID        *big.Int
	Asset     common.Address
	EventName string
	Raw       types.Log
}

// ErrTransactionReverted is returned when a receipt records a failed
// execution; its logs are meaningless and are never scanned.
var ErrTransactionReverted = errors.New("transaction reverted")

// CorrelateCreation scans the receipt's logs in emission order and returns
// the record of the first log the registry decodes as the named event. Logs
// from unrelated contracts and undecodable logs are skipped. It returns an
// error if no log matches: a receipt may legitimately carry events from
// several contracts, but the creation this call is correlating must be among
// them.
func CorrelateCreation(receipt *types.Receipt, event string, registry *Registry) (*CreationRecord, error) {
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, apperrors.BadRequestError(ErrTransactionReverted,
			fmt.Sprintf("transaction %s reverted", receipt.TxHash.Hex()))
	}
	for _, lg := range receipt.Logs {
		record, ok := registry.TryDecodeEvent(*lg, event)
		if !ok {
			continue
		}
		return record, nil
	}
	return nil, apperrors.CreationNotFoundError(nil,
		fmt.Sprintf("no %s event in receipt %s", event, receipt.TxHash.Hex()))
}
