package platform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ampnet/tokenizer-middleware/internal/metrics"
	apperrors "github.com/ampnet/tokenizer-middleware/pkg/app/errors"
	"github.com/ampnet/tokenizer-middleware/pkg/ethereum/contracts"
	"github.com/ampnet/tokenizer-middleware/pkg/history"
)

// IssuerState reads an issuer instance's full on-chain state.
func (s *Service) IssuerState(ctx context.Context, issuer common.Address) (*contracts.IssuerState, error) {
	state, err := contracts.NewIssuer(issuer, s.client.Backend()).GetState(ctx)
	if err != nil {
		return nil, stateError("issuer", issuer, err)
	}
	return state, nil
}

// AssetState reads an asset instance's full on-chain state.
func (s *Service) AssetState(ctx context.Context, asset common.Address) (*contracts.AssetState, error) {
	state, err := contracts.NewAsset(asset, s.client.Backend()).GetState(ctx)
	if err != nil {
		return nil, stateError("asset", asset, err)
	}
	return state, nil
}

// CampaignState reads a campaign instance's full on-chain state.
func (s *Service) CampaignState(ctx context.Context, campaign common.Address) (*contracts.CampaignState, error) {
	state, err := contracts.NewCfManager(campaign, s.client.Backend()).GetState(ctx)
	if err != nil {
		return nil, stateError("campaign", campaign, err)
	}
	return state, nil
}

// PayoutManagerState reads a payout manager instance's full on-chain state.
func (s *Service) PayoutManagerState(ctx context.Context, manager common.Address) (*contracts.PayoutManagerState, error) {
	state, err := contracts.NewPayoutManager(manager, s.client.Backend()).GetState(ctx)
	if err != nil {
		return nil, stateError("payout manager", manager, err)
	}
	return state, nil
}

// WalletRecords lists the wallets an issuer has seen with their whitelist
// status.
func (s *Service) WalletRecords(ctx context.Context, issuer common.Address) ([]contracts.WalletRecord, error) {
	records, err := contracts.NewIssuer(issuer, s.client.Backend()).GetWalletRecords(ctx)
	if err != nil {
		return nil, stateError("issuer", issuer, err)
	}
	return records, nil
}

// InfoHistory lists every info hash an instance has carried, oldest first.
func (s *Service) InfoHistory(ctx context.Context, kind InstanceKind, instance common.Address) ([]contracts.InfoEntry, error) {
	backend := s.client.Backend()
	var entries []contracts.InfoEntry
	var err error
	switch kind {
	case KindIssuer:
		entries, err = contracts.NewIssuer(instance, backend).GetInfoHistory(ctx)
	case KindAsset:
		entries, err = contracts.NewAsset(instance, backend).GetInfoHistory(ctx)
	case KindCampaign:
		entries, err = contracts.NewCfManager(instance, backend).GetInfoHistory(ctx)
	case KindPayoutManager:
		entries, err = contracts.NewPayoutManager(instance, backend).GetInfoHistory(ctx)
	default:
		return nil, apperrors.BadRequestError(nil, fmt.Sprintf("unknown instance kind %q", kind))
	}
	if err != nil {
		return nil, stateError(string(kind), instance, err)
	}
	return entries, nil
}

// AssetBalance returns a wallet's asset token balance in human-readable
// units.
func (s *Service) AssetBalance(ctx context.Context, asset, wallet common.Address) (decimal.Decimal, error) {
	balance, err := contracts.NewAsset(asset, s.client.Backend()).BalanceOf(ctx, wallet)
	if err != nil {
		return decimal.Zero, stateError("asset", asset, err)
	}
	return FromWei(balance), nil
}

// StablecoinBalance returns a wallet's stablecoin balance in human-readable
// units.
func (s *Service) StablecoinBalance(ctx context.Context, wallet common.Address) (decimal.Decimal, error) {
	stablecoin := contracts.NewStablecoin(common.HexToAddress(s.cfg.Contracts.Stablecoin), s.client.Backend())
	balance, err := stablecoin.BalanceOf(ctx, wallet)
	if err != nil {
		return decimal.Zero, apperrors.GeneralError(err)
	}
	return FromWei(balance), nil
}

// TransactionHistory reconstructs a wallet's activity across every instance
// belonging to the issuer, merged oldest first. When some instance queries
// fail the successful records are returned together with a
// *history.PartialError so callers can surface the gap.
func (s *Service) TransactionHistory(ctx context.Context, wallet, issuer common.Address) ([]history.Record, error) {
	start := time.Now()

	set, err := s.discovery.InstanceSet(ctx, issuer)
	if err != nil {
		metrics.HistoryDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}

	records, scanErr := s.scanner.Scan(ctx, wallet, set)
	merged := history.Merge(records)

	outcome := "success"
	var partial *history.PartialError
	if scanErr != nil {
		if !errors.As(scanErr, &partial) {
			metrics.HistoryDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
			return nil, apperrors.GeneralError(scanErr)
		}
		outcome = "partial"
		s.logger.Warn("history scan incomplete",
			zap.String("wallet", wallet.Hex()),
			zap.Int("failures", len(partial.Failures)))
	}
	metrics.HistoryDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	s.logger.Debug("history reconstructed",
		zap.String("wallet", wallet.Hex()),
		zap.Int("records", len(merged)),
		zap.Duration("took", time.Since(start)))
	return merged, scanErr
}

func stateError(family string, instance common.Address, err error) error {
	return apperrors.ResourceNotFoundError(err,
		fmt.Sprintf("%s %s state unavailable", family, instance.Hex()))
}
