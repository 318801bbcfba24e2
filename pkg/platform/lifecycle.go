package platform

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	apperrors "github.com/ampnet/tokenizer-middleware/pkg/app/errors"
	"github.com/ampnet/tokenizer-middleware/pkg/ethereum/contracts"
)

// Invest places an investment into a campaign. The stablecoin spend is
// approved to the campaign first, then invested, as two separate
// transactions.
func (s *Service) Invest(ctx context.Context, campaign common.Address, amount decimal.Decimal) (*types.Receipt, error) {
	wei, err := ToWei(amount)
	if err != nil {
		return nil, err
	}
	stablecoin := contracts.NewStablecoin(common.HexToAddress(s.cfg.Contracts.Stablecoin), s.client.Backend())
	if _, err := s.submit(ctx, "approve_stablecoin", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return stablecoin.Approve(opts, campaign, wei)
	}); err != nil {
		return nil, err
	}
	instance := contracts.NewCfManager(campaign, s.client.Backend())
	return s.submit(ctx, "invest", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return instance.Invest(opts, wei)
	})
}

// CancelInvestment withdraws the signer's pending investment from a
// campaign.
func (s *Service) CancelInvestment(ctx context.Context, campaign common.Address) (*types.Receipt, error) {
	instance := contracts.NewCfManager(campaign, s.client.Backend())
	return s.submit(ctx, "cancel_investment", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return instance.CancelInvestment(opts)
	})
}

// ClaimTokens claims an investor's tokens from a finalized campaign. A zero
// investor claims for the signer.
func (s *Service) ClaimTokens(ctx context.Context, campaign, investor common.Address) (*types.Receipt, error) {
	if investor == (common.Address{}) {
		investor = s.client.Address()
	}
	instance := contracts.NewCfManager(campaign, s.client.Backend())
	return s.submit(ctx, "claim_tokens", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return instance.Claim(opts, investor)
	})
}

// FinalizeCampaign closes a campaign that reached its soft cap and releases
// the collected funds to the campaign owner.
func (s *Service) FinalizeCampaign(ctx context.Context, campaign common.Address) (*types.Receipt, error) {
	instance := contracts.NewCfManager(campaign, s.client.Backend())
	return s.submit(ctx, "finalize_campaign", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return instance.Finalize(opts)
	})
}

// CancelCampaign aborts a campaign before finalization.
func (s *Service) CancelCampaign(ctx context.Context, campaign common.Address) (*types.Receipt, error) {
	instance := contracts.NewCfManager(campaign, s.client.Backend())
	return s.submit(ctx, "cancel_campaign", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return instance.CancelCampaign(opts)
	})
}

// CreatePayout funds a revenue distribution round. The stablecoin amount is
// approved to the payout manager first, then the payout is created.
func (s *Service) CreatePayout(ctx context.Context, manager common.Address, description string, amount decimal.Decimal) (*types.Receipt, error) {
	wei, err := ToWei(amount)
	if err != nil {
		return nil, err
	}
	stablecoin := contracts.NewStablecoin(common.HexToAddress(s.cfg.Contracts.Stablecoin), s.client.Backend())
	if _, err := s.submit(ctx, "approve_stablecoin", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return stablecoin.Approve(opts, manager, wei)
	}); err != nil {
		return nil, err
	}
	instance := contracts.NewPayoutManager(manager, s.client.Backend())
	return s.submit(ctx, "create_payout", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return instance.CreatePayout(opts, description, wei)
	})
}

// ReleaseRevenue releases one investor's share of a payout round.
func (s *Service) ReleaseRevenue(ctx context.Context, manager, investor common.Address, payoutID int64) (*types.Receipt, error) {
	instance := contracts.NewPayoutManager(manager, s.client.Backend())
	return s.submit(ctx, "release_revenue", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return instance.Release(opts, investor, big.NewInt(payoutID))
	})
}

// ApproveWallet whitelists a wallet on an issuer through the wallet approver
// contract.
func (s *Service) ApproveWallet(ctx context.Context, issuer, wallet common.Address) (*types.Receipt, error) {
	approver := contracts.NewWalletApprover(common.HexToAddress(s.cfg.Contracts.WalletApprover), s.client.Backend())
	return s.submit(ctx, "approve_wallet", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return approver.ApproveWallet(opts, issuer, wallet)
	})
}

// SuspendWallet removes a wallet from an issuer's whitelist.
func (s *Service) SuspendWallet(ctx context.Context, issuer, wallet common.Address) (*types.Receipt, error) {
	approver := contracts.NewWalletApprover(common.HexToAddress(s.cfg.Contracts.WalletApprover), s.client.Backend())
	return s.submit(ctx, "suspend_wallet", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return approver.SuspendWallet(opts, issuer, wallet)
	})
}

// ApproveCampaign whitelists a campaign wallet on its issuer so the campaign
// can receive and move asset tokens.
func (s *Service) ApproveCampaign(ctx context.Context, issuer, campaign common.Address) (*types.Receipt, error) {
	instance := contracts.NewIssuer(issuer, s.client.Backend())
	return s.submit(ctx, "approve_campaign", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return instance.ApproveCampaign(opts, campaign)
	})
}

// TransferTokens moves asset tokens from the signer to a recipient.
func (s *Service) TransferTokens(ctx context.Context, asset, recipient common.Address, amount decimal.Decimal) (*types.Receipt, error) {
	wei, err := ToWei(amount)
	if err != nil {
		return nil, err
	}
	instance := contracts.NewAsset(asset, s.client.Backend())
	return s.submit(ctx, "transfer_tokens", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return instance.Transfer(opts, recipient, wei)
	})
}

// SetInfo updates the off-chain info hash of any platform instance.
func (s *Service) SetInfo(ctx context.Context, kind InstanceKind, instance common.Address, info string) (*types.Receipt, error) {
	send, err := s.setInfoSender(kind, instance, info)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, "set_info", send)
}

func (s *Service) setInfoSender(kind InstanceKind, instance common.Address, info string) (func(*bind.TransactOpts) (*types.Transaction, error), error) {
	backend := s.client.Backend()
	switch kind {
	case KindIssuer:
		c := contracts.NewIssuer(instance, backend)
		return func(opts *bind.TransactOpts) (*types.Transaction, error) { return c.SetInfo(opts, info) }, nil
	case KindAsset:
		c := contracts.NewAsset(instance, backend)
		return func(opts *bind.TransactOpts) (*types.Transaction, error) { return c.SetInfo(opts, info) }, nil
	case KindCampaign:
		c := contracts.NewCfManager(instance, backend)
		return func(opts *bind.TransactOpts) (*types.Transaction, error) { return c.SetInfo(opts, info) }, nil
	case KindPayoutManager:
		c := contracts.NewPayoutManager(instance, backend)
		return func(opts *bind.TransactOpts) (*types.Transaction, error) { return c.SetInfo(opts, info) }, nil
	default:
		return nil, apperrors.BadRequestError(nil, fmt.Sprintf("unknown instance kind %q", kind))
	}
}
