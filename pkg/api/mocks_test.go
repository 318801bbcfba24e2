package api

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	"github.com/ampnet/tokenizer-middleware/pkg/ethereum/contracts"
	"github.com/ampnet/tokenizer-middleware/pkg/history"
	"github.com/ampnet/tokenizer-middleware/pkg/platform"
)

type mockPlatform struct {
	CreateIssuerFunc              func(ctx context.Context, req platform.CreateIssuerRequest) (*platform.CreationRecord, error)
	CreateAssetFunc               func(ctx context.Context, req platform.CreateAssetRequest) (*platform.CreationRecord, error)
	CreateCampaignFunc            func(ctx context.Context, req platform.CreateCampaignRequest) (*platform.CreationRecord, error)
	CreatePayoutManagerFunc       func(ctx context.Context, req platform.CreatePayoutManagerRequest) (*platform.CreationRecord, error)
	CreateIssuerAssetCampaignFunc func(ctx context.Context, req platform.CreateIssuerAssetCampaignRequest) (*platform.CombinedCreation, error)
	CreateAssetCampaignFunc       func(ctx context.Context, req platform.CreateAssetCampaignRequest) (*platform.CombinedCreation, error)

	InvestFunc           func(ctx context.Context, campaign common.Address, amount decimal.Decimal) (*types.Receipt, error)
	CancelInvestmentFunc func(ctx context.Context, campaign common.Address) (*types.Receipt, error)
	ClaimTokensFunc      func(ctx context.Context, campaign, investor common.Address) (*types.Receipt, error)
	FinalizeCampaignFunc func(ctx context.Context, campaign common.Address) (*types.Receipt, error)
	CancelCampaignFunc   func(ctx context.Context, campaign common.Address) (*types.Receipt, error)
	CreatePayoutFunc     func(ctx context.Context, manager common.Address, description string, amount decimal.Decimal) (*types.Receipt, error)
	ReleaseRevenueFunc   func(ctx context.Context, manager, investor common.Address, payoutID int64) (*types.Receipt, error)
	ApproveWalletFunc    func(ctx context.Context, issuer, wallet common.Address) (*types.Receipt, error)
	SuspendWalletFunc    func(ctx context.Context, issuer, wallet common.Address) (*types.Receipt, error)
	TransferTokensFunc   func(ctx context.Context, asset, recipient common.Address, amount decimal.Decimal) (*types.Receipt, error)

	IssuerStateFunc        func(ctx context.Context, issuer common.Address) (*contracts.IssuerState, error)
	AssetStateFunc         func(ctx context.Context, asset common.Address) (*contracts.AssetState, error)
	CampaignStateFunc      func(ctx context.Context, campaign common.Address) (*contracts.CampaignState, error)
	PayoutManagerStateFunc func(ctx context.Context, manager common.Address) (*contracts.PayoutManagerState, error)
	WalletRecordsFunc      func(ctx context.Context, issuer common.Address) ([]contracts.WalletRecord, error)
	InfoHistoryFunc        func(ctx context.Context, kind platform.InstanceKind, instance common.Address) ([]contracts.InfoEntry, error)
	AssetBalanceFunc       func(ctx context.Context, asset, wallet common.Address) (decimal.Decimal, error)
	StablecoinBalanceFunc  func(ctx context.Context, wallet common.Address) (decimal.Decimal, error)
	TransactionHistoryFunc func(ctx context.Context, wallet, issuer common.Address) ([]history.Record, error)
}

func (m *mockPlatform) CreateIssuer(ctx context.Context, req platform.CreateIssuerRequest) (*platform.CreationRecord, error) {
	if m.CreateIssuerFunc != nil {
		return m.CreateIssuerFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockPlatform) CreateAsset(ctx context.Context, req platform.CreateAssetRequest) (*platform.CreationRecord, error) {
	if m.CreateAssetFunc != nil {
		return m.CreateAssetFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockPlatform) CreateCampaign(ctx context.Context, req platform.CreateCampaignRequest) (*platform.CreationRecord, error) {
	if m.CreateCampaignFunc != nil {
		return m.CreateCampaignFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockPlatform) CreatePayoutManager(ctx context.Context, req platform.CreatePayoutManagerRequest) (*platform.CreationRecord, error) {
	if m.CreatePayoutManagerFunc != nil {
		return m.CreatePayoutManagerFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockPlatform) CreateIssuerAssetCampaign(ctx context.Context, req platform.CreateIssuerAssetCampaignRequest) (*platform.CombinedCreation, error) {
	if m.CreateIssuerAssetCampaignFunc != nil {
		return m.CreateIssuerAssetCampaignFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockPlatform) CreateAssetCampaign(ctx context.Context, req platform.CreateAssetCampaignRequest) (*platform.CombinedCreation, error) {
	if m.CreateAssetCampaignFunc != nil {
		return m.CreateAssetCampaignFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockPlatform) Invest(ctx context.Context, campaign common.Address, amount decimal.Decimal) (*types.Receipt, error) {
	if m.InvestFunc != nil {
		return m.InvestFunc(ctx, campaign, amount)
	}
	return nil, nil
}

func (m *mockPlatform) CancelInvestment(ctx context.Context, campaign common.Address) (*types.Receipt, error) {
	if m.CancelInvestmentFunc != nil {
		return m.CancelInvestmentFunc(ctx, campaign)
	}
	return nil, nil
}

func (m *mockPlatform) ClaimTokens(ctx context.Context, campaign, investor common.Address) (*types.Receipt, error) {
	if m.ClaimTokensFunc != nil {
		return m.ClaimTokensFunc(ctx, campaign, investor)
	}
	return nil, nil
}

func (m *mockPlatform) FinalizeCampaign(ctx context.Context, campaign common.Address) (*types.Receipt, error) {
	if m.FinalizeCampaignFunc != nil {
		return m.FinalizeCampaignFunc(ctx, campaign)
	}
	return nil, nil
}

func (m *mockPlatform) CancelCampaign(ctx context.Context, campaign common.Address) (*types.Receipt, error) {
	if m.CancelCampaignFunc != nil {
		return m.CancelCampaignFunc(ctx, campaign)
	}
	return nil, nil
}

func (m *mockPlatform) CreatePayout(ctx context.Context, manager common.Address, description string, amount decimal.Decimal) (*types.Receipt, error) {
	if m.CreatePayoutFunc != nil {
		return m.CreatePayoutFunc(ctx, manager, description, amount)
	}
	return nil, nil
}

func (m *mockPlatform) ReleaseRevenue(ctx context.Context, manager, investor common.Address, payoutID int64) (*types.Receipt, error) {
	if m.ReleaseRevenueFunc != nil {
		return m.ReleaseRevenueFunc(ctx, manager, investor, payoutID)
	}
	return nil, nil
}

func (m *mockPlatform) ApproveWallet(ctx context.Context, issuer, wallet common.Address) (*types.Receipt, error) {
	if m.ApproveWalletFunc != nil {
		return m.ApproveWalletFunc(ctx, issuer, wallet)
	}
	return nil, nil
}

func (m *mockPlatform) SuspendWallet(ctx context.Context, issuer, wallet common.Address) (*types.Receipt, error) {
	if m.SuspendWalletFunc != nil {
		return m.SuspendWalletFunc(ctx, issuer, wallet)
	}
	return nil, nil
}

func (m *mockPlatform) TransferTokens(ctx context.Context, asset, recipient common.Address, amount decimal.Decimal) (*types.Receipt, error) {
	if m.TransferTokensFunc != nil {
		return m.TransferTokensFunc(ctx, asset, recipient, amount)
	}
	return nil, nil
}

func (m *mockPlatform) IssuerState(ctx context.Context, issuer common.Address) (*contracts.IssuerState, error) {
	if m.IssuerStateFunc != nil {
		return m.IssuerStateFunc(ctx, issuer)
	}
	return nil, nil
}

func (m *mockPlatform) AssetState(ctx context.Context, asset common.Address) (*contracts.AssetState, error) {
	if m.AssetStateFunc != nil {
		return m.AssetStateFunc(ctx, asset)
	}
	return nil, nil
}

func (m *mockPlatform) CampaignState(ctx context.Context, campaign common.Address) (*contracts.CampaignState, error) {
	if m.CampaignStateFunc != nil {
		return m.CampaignStateFunc(ctx, campaign)
	}
	return nil, nil
}

func (m *mockPlatform) PayoutManagerState(ctx context.Context, manager common.Address) (*contracts.PayoutManagerState, error) {
	if m.PayoutManagerStateFunc != nil {
		return m.PayoutManagerStateFunc(ctx, manager)
	}
	return nil, nil
}

func (m *mockPlatform) WalletRecords(ctx context.Context, issuer common.Address) ([]contracts.WalletRecord, error) {
	if m.WalletRecordsFunc != nil {
		return m.WalletRecordsFunc(ctx, issuer)
	}
	return nil, nil
}

func (m *mockPlatform) InfoHistory(ctx context.Context, kind platform.InstanceKind, instance common.Address) ([]contracts.InfoEntry, error) {
	if m.InfoHistoryFunc != nil {
		return m.InfoHistoryFunc(ctx, kind, instance)
	}
	return nil, nil
}

func (m *mockPlatform) AssetBalance(ctx context.Context, asset, wallet common.Address) (decimal.Decimal, error) {
	if m.AssetBalanceFunc != nil {
		return m.AssetBalanceFunc(ctx, asset, wallet)
	}
	return decimal.Zero, nil
}

func (m *mockPlatform) StablecoinBalance(ctx context.Context, wallet common.Address) (decimal.Decimal, error) {
	if m.StablecoinBalanceFunc != nil {
		return m.StablecoinBalanceFunc(ctx, wallet)
	}
	return decimal.Zero, nil
}

func (m *mockPlatform) TransactionHistory(ctx context.Context, wallet, issuer common.Address) ([]history.Record, error) {
	if m.TransactionHistoryFunc != nil {
		return m.TransactionHistoryFunc(ctx, wallet, issuer)
	}
	return nil, nil
}

type mockDiscovery struct {
	ListIssuersFunc   func(ctx context.Context) ([]common.Address, error)
	ListForKindFunc   func(ctx context.Context, kind platform.InstanceKind) ([]common.Address, error)
	ListForIssuerFunc func(ctx context.Context, kind platform.InstanceKind, issuer common.Address) ([]common.Address, error)
	ListForAssetFunc  func(ctx context.Context, kind platform.InstanceKind, asset common.Address) ([]common.Address, error)
}

func (m *mockDiscovery) ListIssuers(ctx context.Context) ([]common.Address, error) {
	if m.ListIssuersFunc != nil {
		return m.ListIssuersFunc(ctx)
	}
	return nil, nil
}

func (m *mockDiscovery) ListForKind(ctx context.Context, kind platform.InstanceKind) ([]common.Address, error) {
	if m.ListForKindFunc != nil {
		return m.ListForKindFunc(ctx, kind)
	}
	return nil, nil
}

func (m *mockDiscovery) ListForIssuer(ctx context.Context, kind platform.InstanceKind, issuer common.Address) ([]common.Address, error) {
	if m.ListForIssuerFunc != nil {
		return m.ListForIssuerFunc(ctx, kind, issuer)
	}
	return nil, nil
}

func (m *mockDiscovery) ListForAsset(ctx context.Context, kind platform.InstanceKind, asset common.Address) ([]common.Address, error) {
	if m.ListForAssetFunc != nil {
		return m.ListForAssetFunc(ctx, kind, asset)
	}
	return nil, nil
}
