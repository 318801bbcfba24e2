package platform

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ampnet/tokenizer-middleware/internal/metrics"
	apperrors "github.com/ampnet/tokenizer-middleware/pkg/app/errors"
	"github.com/ampnet/tokenizer-middleware/pkg/config"
	"github.com/ampnet/tokenizer-middleware/pkg/ethereum"
	"github.com/ampnet/tokenizer-middleware/pkg/ethereum/contracts"
	"github.com/ampnet/tokenizer-middleware/pkg/history"
)

// Service is the orchestration entry point. It owns the factory bindings,
// the creation event registry, instance discovery and the history scanner,
// and exposes the platform operations the API and CLI call.
type Service struct {
	cfg    *config.Config
	client *ethereum.Client
	logger *zap.Logger

	registry        *Registry
	issuerFactory   *contracts.IssuerFactory
	assetFactory    *contracts.AssetFactory
	campaignFactory *contracts.CfManagerFactory
	payoutFactory   *contracts.PayoutManagerFactory
	deployer        *contracts.DeployerService
	discovery       *Discovery
	scanner         *history.Scanner
}

func NewService(cfg *config.Config, client *ethereum.Client, logger *zap.Logger) *Service {
	backend := client.Backend()
	s := &Service{
		cfg:             cfg,
		client:          client,
		logger:          logger.Named("platform"),
		registry:        DefaultRegistry(),
		issuerFactory:   contracts.NewIssuerFactory(common.HexToAddress(cfg.Contracts.IssuerFactory), backend),
		assetFactory:    contracts.NewAssetFactory(common.HexToAddress(cfg.Contracts.AssetFactory), backend),
		campaignFactory: contracts.NewCfManagerFactory(common.HexToAddress(cfg.Contracts.CfManagerFactory), backend),
		payoutFactory:   contracts.NewPayoutManagerFactory(common.HexToAddress(cfg.Contracts.PayoutManagerFactory), backend),
		scanner:         history.NewScanner(backend, client, logger),
	}
	if cfg.Contracts.DeployerService != "" {
		s.deployer = contracts.NewDeployerService(common.HexToAddress(cfg.Contracts.DeployerService), backend)
	}
	s.discovery = NewDiscovery(s.issuerFactory, s.assetFactory, s.campaignFactory, s.payoutFactory)
	return s
}

// Discovery exposes instance enumeration.
func (s *Service) Discovery() *Discovery {
	return s.discovery
}

// Registry exposes the creation event decoders, mainly so callers can
// correlate receipts they obtained elsewhere.
func (s *Service) Registry() *Registry {
	return s.registry
}

// submit signs and sends one transaction, waits for it to be mined and
// returns the receipt. Reverted transactions come back as receipts too; the
// caller decides what a failed status means for its operation.
func (s *Service) submit(ctx context.Context, operation string, send func(opts *bind.TransactOpts) (*types.Transaction, error)) (*types.Receipt, error) {
	opts, err := s.client.Transactor(ctx)
	if err != nil {
		return nil, apperrors.GeneralError(err)
	}
	tx, err := send(opts)
	if err != nil {
		metrics.TransactionsSent.WithLabelValues(operation, "error").Inc()
		return nil, apperrors.GeneralError(err)
	}
	s.logger.Info("transaction sent",
		zap.String("operation", operation),
		zap.String("tx", tx.Hash().Hex()))
	receipt, err := s.client.WaitMined(ctx, tx)
	if err != nil {
		metrics.TransactionsSent.WithLabelValues(operation, "error").Inc()
		return nil, apperrors.GeneralError(err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		metrics.TransactionsSent.WithLabelValues(operation, "reverted").Inc()
		s.logger.Warn("transaction reverted",
			zap.String("operation", operation),
			zap.String("tx", tx.Hash().Hex()))
	} else {
		metrics.TransactionsSent.WithLabelValues(operation, "success").Inc()
	}
	return receipt, nil
}

// correlate extracts a creation record from a mined receipt and counts it.
func (s *Service) correlate(receipt *types.Receipt, event string) (*CreationRecord, error) {
	record, err := CorrelateCreation(receipt, event, s.registry)
	if err != nil {
		return nil, err
	}
	metrics.CreationsTotal.WithLabelValues(string(record.Kind)).Inc()
	s.logger.Info("instance created",
		zap.String("kind", string(record.Kind)),
		zap.String("instance", record.Instance.Hex()),
		zap.String("owner", record.Owner.Hex()),
		zap.String("id", record.ID.String()))
	return record, nil
}

// owner falls back to the signer address when the request leaves it unset.
func (s *Service) owner(requested common.Address) common.Address {
	if requested == (common.Address{}) {
		return s.client.Address()
	}
	return requested
}

type CreateIssuerRequest struct {
	Owner common.Address
	Info  string
}

// CreateIssuer creates a new issuer through the factory and returns the
// correlated instance record.
func (s *Service) CreateIssuer(ctx context.Context, req CreateIssuerRequest) (*CreationRecord, error) {
	stablecoin := common.HexToAddress(s.cfg.Contracts.Stablecoin)
	approver := common.HexToAddress(s.cfg.Contracts.WalletApprover)
	receipt, err := s.submit(ctx, "create_issuer", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return s.issuerFactory.Create(opts, s.owner(req.Owner), stablecoin, approver, req.Info)
	})
	if err != nil {
		return nil, err
	}
	return s.correlate(receipt, "IssuerCreated")
}

type CreateAssetRequest struct {
	Owner              common.Address
	Issuer             common.Address
	InitialTokenSupply decimal.Decimal
	WhitelistRequired  bool
	Name               string
	Symbol             string
	Info               string
}

// CreateAsset tokenizes a new asset under an existing issuer.
func (s *Service) CreateAsset(ctx context.Context, req CreateAssetRequest) (*CreationRecord, error) {
	supply, err := ToWei(req.InitialTokenSupply)
	if err != nil {
		return nil, err
	}
	receipt, err := s.submit(ctx, "create_asset", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return s.assetFactory.Create(opts, s.owner(req.Owner), req.Issuer, supply,
			req.WhitelistRequired, req.Name, req.Symbol, req.Info)
	})
	if err != nil {
		return nil, err
	}
	return s.correlate(receipt, "AssetCreated")
}

type CreateCampaignRequest struct {
	Owner             common.Address
	Asset             common.Address
	PricePerToken     decimal.Decimal
	SoftCap           decimal.Decimal
	MinInvestment     decimal.Decimal
	MaxInvestment     decimal.Decimal
	WhitelistRequired bool
	Info              string
}

// CreateCampaign opens a crowdfunding campaign selling an existing asset.
func (s *Service) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*CreationRecord, error) {
	amounts := make([]*big.Int, 4)
	for i, d := range []decimal.Decimal{req.PricePerToken, req.SoftCap, req.MinInvestment, req.MaxInvestment} {
		wei, err := ToWei(d)
		if err != nil {
			return nil, err
		}
		amounts[i] = wei
	}
	receipt, err := s.submit(ctx, "create_campaign", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return s.campaignFactory.Create(opts, s.owner(req.Owner), req.Asset,
			amounts[0], amounts[1], amounts[2], amounts[3], req.WhitelistRequired, req.Info)
	})
	if err != nil {
		return nil, err
	}
	return s.correlate(receipt, "CfManagerSoftcapCreated")
}

type CreatePayoutManagerRequest struct {
	Owner common.Address
	Asset common.Address
	Info  string
}

// CreatePayoutManager creates a revenue distribution manager for an asset.
func (s *Service) CreatePayoutManager(ctx context.Context, req CreatePayoutManagerRequest) (*CreationRecord, error) {
	receipt, err := s.submit(ctx, "create_payout_manager", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return s.payoutFactory.Create(opts, s.owner(req.Owner), req.Asset, req.Info)
	})
	if err != nil {
		return nil, err
	}
	return s.correlate(receipt, "PayoutManagerCreated")
}

// CombinedCreation holds the records correlated out of one combined
// deployment receipt. Issuer is nil when the deployment reused an existing
// issuer.
type CombinedCreation struct {
	Issuer   *CreationRecord
	Asset    *CreationRecord
	Campaign *CreationRecord
}

type CreateIssuerAssetCampaignRequest struct {
	IssuerInfo string

	AssetInitialTokenSupply decimal.Decimal
	AssetWhitelistRequired  bool
	AssetName               string
	AssetSymbol             string
	AssetInfo               string

	CampaignPricePerToken     decimal.Decimal
	CampaignSoftCap           decimal.Decimal
	CampaignMinInvestment     decimal.Decimal
	CampaignMaxInvestment     decimal.Decimal
	CampaignTokensToSell      decimal.Decimal
	CampaignWhitelistRequired bool
	CampaignInfo              string
}

// CreateIssuerAssetCampaign creates an issuer, an asset under it and a
// campaign selling that asset in a single transaction, then correlates all
// three creation events out of the one receipt.
func (s *Service) CreateIssuerAssetCampaign(ctx context.Context, req CreateIssuerAssetCampaignRequest) (*CombinedCreation, error) {
	if s.deployer == nil {
		return nil, apperrors.BadRequestError(nil, "deployer service address not configured")
	}
	wei, err := toWeiAll(req.AssetInitialTokenSupply, req.CampaignPricePerToken,
		req.CampaignSoftCap, req.CampaignMinInvestment, req.CampaignMaxInvestment,
		req.CampaignTokensToSell)
	if err != nil {
		return nil, err
	}
	owner := s.client.Address()
	request := contracts.DeployIssuerAssetCampaignRequest{
		IssuerFactory:              s.issuerFactory.Address(),
		AssetFactory:               s.assetFactory.Address(),
		CfManagerFactory:           s.campaignFactory.Address(),
		IssuerOwner:                owner,
		IssuerStablecoin:           common.HexToAddress(s.cfg.Contracts.Stablecoin),
		IssuerWalletApprover:       common.HexToAddress(s.cfg.Contracts.WalletApprover),
		IssuerInfo:                 req.IssuerInfo,
		AssetOwner:                 owner,
		AssetInitialTokenSupply:    wei[0],
		AssetWhitelistRequired:     req.AssetWhitelistRequired,
		AssetName:                  req.AssetName,
		AssetSymbol:                req.AssetSymbol,
		AssetInfo:                  req.AssetInfo,
		CfManagerOwner:             owner,
		CfManagerPricePerToken:     wei[1],
		CfManagerSoftcap:           wei[2],
		CfManagerMinInvestment:     wei[3],
		CfManagerMaxInvestment:     wei[4],
		CfManagerTokensToSell:      wei[5],
		CfManagerWhitelistRequired: req.CampaignWhitelistRequired,
		CfManagerInfo:              req.CampaignInfo,
	}
	receipt, err := s.submit(ctx, "deploy_issuer_asset_campaign", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return s.deployer.DeployIssuerAssetCampaign(opts, request)
	})
	if err != nil {
		return nil, err
	}
	combined := &CombinedCreation{}
	if combined.Issuer, err = s.correlate(receipt, "IssuerCreated"); err != nil {
		return nil, err
	}
	if combined.Asset, err = s.correlate(receipt, "AssetCreated"); err != nil {
		return nil, err
	}
	if combined.Campaign, err = s.correlate(receipt, "CfManagerSoftcapCreated"); err != nil {
		return nil, err
	}
	return combined, nil
}

type CreateAssetCampaignRequest struct {
	Issuer common.Address

	AssetInitialTokenSupply decimal.Decimal
	AssetWhitelistRequired  bool
	AssetName               string
	AssetSymbol             string
	AssetInfo               string

	CampaignPricePerToken     decimal.Decimal
	CampaignSoftCap           decimal.Decimal
	CampaignMinInvestment     decimal.Decimal
	CampaignMaxInvestment     decimal.Decimal
	CampaignTokensToSell      decimal.Decimal
	CampaignWhitelistRequired bool
	CampaignInfo              string
}

// CreateAssetCampaign creates an asset and a campaign under an existing
// issuer in a single transaction.
func (s *Service) CreateAssetCampaign(ctx context.Context, req CreateAssetCampaignRequest) (*CombinedCreation, error) {
	if s.deployer == nil {
		return nil, apperrors.BadRequestError(nil, "deployer service address not configured")
	}
	wei, err := toWeiAll(req.AssetInitialTokenSupply, req.CampaignPricePerToken,
		req.CampaignSoftCap, req.CampaignMinInvestment, req.CampaignMaxInvestment,
		req.CampaignTokensToSell)
	if err != nil {
		return nil, err
	}
	owner := s.client.Address()
	request := contracts.DeployAssetCampaignRequest{
		AssetFactory:               s.assetFactory.Address(),
		CfManagerFactory:           s.campaignFactory.Address(),
		Issuer:                     req.Issuer,
		AssetOwner:                 owner,
		AssetInitialTokenSupply:    wei[0],
		AssetWhitelistRequired:     req.AssetWhitelistRequired,
		AssetName:                  req.AssetName,
		AssetSymbol:                req.AssetSymbol,
		AssetInfo:                  req.AssetInfo,
		CfManagerOwner:             owner,
		CfManagerPricePerToken:     wei[1],
		CfManagerSoftcap:           wei[2],
		CfManagerMinInvestment:     wei[3],
		CfManagerMaxInvestment:     wei[4],
		CfManagerTokensToSell:      wei[5],
		CfManagerWhitelistRequired: req.CampaignWhitelistRequired,
		CfManagerInfo:              req.CampaignInfo,
	}
	receipt, err := s.submit(ctx, "deploy_asset_campaign", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return s.deployer.DeployAssetCampaign(opts, request)
	})
	if err != nil {
		return nil, err
	}
	combined := &CombinedCreation{}
	if combined.Asset, err = s.correlate(receipt, "AssetCreated"); err != nil {
		return nil, err
	}
	if combined.Campaign, err = s.correlate(receipt, "CfManagerSoftcapCreated"); err != nil {
		return nil, err
	}
	return combined, nil
}

func toWeiAll(amounts ...decimal.Decimal) ([]*big.Int, error) {
	out := make([]*big.Int, len(amounts))
	for i, d := range amounts {
		wei, err := ToWei(d)
		if err != nil {
			return nil, err
		}
		out[i] = wei
	}
	return out, nil
}
