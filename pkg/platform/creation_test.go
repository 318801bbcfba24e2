package platform

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	apperrors "github.com/ampnet/tokenizer-middleware/pkg/app/errors"
)

var (
	issuerCreatedTopic        = crypto.Keccak256Hash([]byte("IssuerCreated(address,address,uint256)"))
	assetCreatedTopic         = crypto.Keccak256Hash([]byte("AssetCreated(address,address,uint256)"))
	campaignCreatedTopic      = crypto.Keccak256Hash([]byte("CfManagerSoftcapCreated(address,address,uint256,address)"))
	payoutManagerCreatedTopic = crypto.Keccak256Hash([]byte("PayoutManagerCreated(address,address,uint256,address)"))
)

func addrWord(a common.Address) []byte {
	return common.LeftPadBytes(a.Bytes(), 32)
}

func intWord(i int64) []byte {
	return common.LeftPadBytes(big.NewInt(i).Bytes(), 32)
}

func addressTopic(a common.Address) common.Hash {
	return common.BytesToHash(addrWord(a))
}

// creationLog crafts a factory creation log: creator indexed, instance and id
// in the data, plus an optional trailing asset word for the campaign and
// payout manager events.
func creationLog(event common.Hash, emitter, creator, instance common.Address, id int64, asset *common.Address) *types.Log {
	data := append(addrWord(instance), intWord(id)...)
	if asset != nil {
		data = append(data, addrWord(*asset)...)
	}
	return &types.Log{
		Address: emitter,
		Topics:  []common.Hash{event, addressTopic(creator)},
		Data:    data,
	}
}

func successReceipt(logs ...*types.Log) *types.Receipt {
	return &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		TxHash: common.HexToHash("0xabc123"),
		Logs:   logs,
	}
}

var (
	factoryAddr  = common.HexToAddress("0x00000000000000000000000000000000000000f1")
	creatorAddr  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	instanceAddr = common.HexToAddress("0x2222222222222222222222222222222222222222")
	assetAddr    = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func TestCorrelateCreation_IssuerCreated(t *testing.T) {
	unrelated := &types.Log{
		Address: common.HexToAddress("0x99"),
		Topics:  []common.Hash{crypto.Keccak256Hash([]byte("Approval(address,address,uint256)"))},
	}
	receipt := successReceipt(
		unrelated,
		creationLog(issuerCreatedTopic, factoryAddr, creatorAddr, instanceAddr, 7, nil),
	)

	record, err := CorrelateCreation(receipt, "IssuerCreated", DefaultRegistry())
	if err != nil {
		t.Fatalf("CorrelateCreation failed: %v", err)
	}
	if record.Kind != KindIssuer {
		t.Errorf("expected kind %s, got %s", KindIssuer, record.Kind)
	}
	if record.Instance != instanceAddr {
		t.Errorf("expected instance %s, got %s", instanceAddr.Hex(), record.Instance.Hex())
	}
	if record.Owner != creatorAddr {
		t.Errorf("expected owner %s, got %s", creatorAddr.Hex(), record.Owner.Hex())
	}
	if record.ID.Int64() != 7 {
		t.Errorf("expected id 7, got %s", record.ID)
	}
}

func TestCorrelateCreation_FirstMatchWins(t *testing.T) {
	first := common.HexToAddress("0xaaa1")
	second := common.HexToAddress("0xaaa2")
	receipt := successReceipt(
		creationLog(issuerCreatedTopic, factoryAddr, creatorAddr, first, 1, nil),
		creationLog(issuerCreatedTopic, factoryAddr, creatorAddr, second, 2, nil),
	)

	record, err := CorrelateCreation(receipt, "IssuerCreated", DefaultRegistry())
	if err != nil {
		t.Fatalf("CorrelateCreation failed: %v", err)
	}
	if record.Instance != first {
		t.Errorf("expected first log's instance %s, got %s", first.Hex(), record.Instance.Hex())
	}
}

func TestCorrelateCreation_NoMatch(t *testing.T) {
	receipt := successReceipt(
		creationLog(assetCreatedTopic, factoryAddr, creatorAddr, instanceAddr, 1, nil),
	)

	_, err := CorrelateCreation(receipt, "PayoutManagerCreated", DefaultRegistry())
	if err == nil {
		t.Fatal("expected error for receipt without the event")
	}
	if !apperrors.Is(err, apperrors.CategoryCreationNotFound) {
		t.Errorf("expected CategoryCreationNotFound, got %v", err)
	}
}

func TestCorrelateCreation_RevertedReceipt(t *testing.T) {
	receipt := &types.Receipt{
		Status: types.ReceiptStatusFailed,
		TxHash: common.HexToHash("0xdead"),
		Logs: []*types.Log{
			creationLog(issuerCreatedTopic, factoryAddr, creatorAddr, instanceAddr, 1, nil),
		},
	}

	_, err := CorrelateCreation(receipt, "IssuerCreated", DefaultRegistry())
	if err == nil {
		t.Fatal("expected error for reverted receipt")
	}
	if !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Errorf("expected CategoryDataError, got %v", err)
	}
}

// One combined deployment transaction emits several creation events; each
// must be retrievable independently from the same receipt, because the
// correlation is scoped by event name rather than decoding every log
// generically.
func TestCorrelateCreation_CombinedReceipt(t *testing.T) {
	issuerInstance := common.HexToAddress("0xbbb1")
	assetInstance := common.HexToAddress("0xbbb2")
	campaignInstance := common.HexToAddress("0xbbb3")
	receipt := successReceipt(
		creationLog(issuerCreatedTopic, factoryAddr, creatorAddr, issuerInstance, 1, nil),
		creationLog(assetCreatedTopic, factoryAddr, creatorAddr, assetInstance, 2, nil),
		creationLog(campaignCreatedTopic, factoryAddr, creatorAddr, campaignInstance, 3, &assetInstance),
	)
	registry := DefaultRegistry()

	issuer, err := CorrelateCreation(receipt, "IssuerCreated", registry)
	if err != nil {
		t.Fatalf("issuer correlation failed: %v", err)
	}
	asset, err := CorrelateCreation(receipt, "AssetCreated", registry)
	if err != nil {
		t.Fatalf("asset correlation failed: %v", err)
	}
	campaign, err := CorrelateCreation(receipt, "CfManagerSoftcapCreated", registry)
	if err != nil {
		t.Fatalf("campaign correlation failed: %v", err)
	}

	if issuer.Instance != issuerInstance || issuer.Kind != KindIssuer {
		t.Errorf("unexpected issuer record: %+v", issuer)
	}
	if asset.Instance != assetInstance || asset.Kind != KindAsset {
		t.Errorf("unexpected asset record: %+v", asset)
	}
	if campaign.Instance != campaignInstance || campaign.Kind != KindCampaign {
		t.Errorf("unexpected campaign record: %+v", campaign)
	}
	if campaign.Asset != assetInstance {
		t.Errorf("expected campaign asset %s, got %s", assetInstance.Hex(), campaign.Asset.Hex())
	}
}

func TestRegistry_TryDecode_UnknownLog(t *testing.T) {
	registry := DefaultRegistry()
	lg := types.Log{
		Address: factoryAddr,
		Topics:  []common.Hash{crypto.Keccak256Hash([]byte("Paused(address)"))},
	}
	if _, ok := registry.TryDecode(lg); ok {
		t.Error("expected no decode for unknown log")
	}
}

func TestRegistry_TryDecode_PayoutManagerCreated(t *testing.T) {
	registry := DefaultRegistry()
	lg := creationLog(payoutManagerCreatedTopic, factoryAddr, creatorAddr, instanceAddr, 4, &assetAddr)

	record, ok := registry.TryDecode(*lg)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if record.Kind != KindPayoutManager {
		t.Errorf("expected kind %s, got %s", KindPayoutManager, record.Kind)
	}
	if record.Asset != assetAddr {
		t.Errorf("expected asset %s, got %s", assetAddr.Hex(), record.Asset.Hex())
	}
}

func TestRegistry_EmitterRestriction(t *testing.T) {
	registry := NewRegistry()
	registry.Register(Decoder{
		Event:   "IssuerCreated",
		Kind:    KindIssuer,
		Emitter: factoryAddr,
		Parse: func(lg types.Log) (*CreationRecord, error) {
			return &CreationRecord{Instance: instanceAddr}, nil
		},
	})

	other := common.HexToAddress("0xfeed")
	if _, ok := registry.TryDecode(types.Log{Address: other}); ok {
		t.Error("expected decode to skip log from a different emitter")
	}
	if _, ok := registry.TryDecode(types.Log{Address: factoryAddr}); !ok {
		t.Error("expected decode to accept log from the registered emitter")
	}
}
