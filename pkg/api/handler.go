// Package api exposes the platform operations over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/ampnet/tokenizer-middleware/pkg/app/errors"
	apphttp "github.com/ampnet/tokenizer-middleware/pkg/app/http"
	"github.com/ampnet/tokenizer-middleware/pkg/ethereum/contracts"
	"github.com/ampnet/tokenizer-middleware/pkg/history"
	"github.com/ampnet/tokenizer-middleware/pkg/platform"
)

// Platform is the slice of the orchestration service the HTTP layer uses.
type Platform interface {
	CreateIssuer(ctx context.Context, req platform.CreateIssuerRequest) (*platform.CreationRecord, error)
	CreateAsset(ctx context.Context, req platform.CreateAssetRequest) (*platform.CreationRecord, error)
	CreateCampaign(ctx context.Context, req platform.CreateCampaignRequest) (*platform.CreationRecord, error)
	CreatePayoutManager(ctx context.Context, req platform.CreatePayoutManagerRequest) (*platform.CreationRecord, error)
	CreateIssuerAssetCampaign(ctx context.Context, req platform.CreateIssuerAssetCampaignRequest) (*platform.CombinedCreation, error)
	CreateAssetCampaign(ctx context.Context, req platform.CreateAssetCampaignRequest) (*platform.CombinedCreation, error)

	Invest(ctx context.Context, campaign common.Address, amount decimal.Decimal) (*types.Receipt, error)
	CancelInvestment(ctx context.Context, campaign common.Address) (*types.Receipt, error)
	ClaimTokens(ctx context.Context, campaign, investor common.Address) (*types.Receipt, error)
	FinalizeCampaign(ctx context.Context, campaign common.Address) (*types.Receipt, error)
	CancelCampaign(ctx context.Context, campaign common.Address) (*types.Receipt, error)
	CreatePayout(ctx context.Context, manager common.Address, description string, amount decimal.Decimal) (*types.Receipt, error)
	ReleaseRevenue(ctx context.Context, manager, investor common.Address, payoutID int64) (*types.Receipt, error)
	ApproveWallet(ctx context.Context, issuer, wallet common.Address) (*types.Receipt, error)
	SuspendWallet(ctx context.Context, issuer, wallet common.Address) (*types.Receipt, error)
	TransferTokens(ctx context.Context, asset, recipient common.Address, amount decimal.Decimal) (*types.Receipt, error)

	IssuerState(ctx context.Context, issuer common.Address) (*contracts.IssuerState, error)
	AssetState(ctx context.Context, asset common.Address) (*contracts.AssetState, error)
	CampaignState(ctx context.Context, campaign common.Address) (*contracts.CampaignState, error)
	PayoutManagerState(ctx context.Context, manager common.Address) (*contracts.PayoutManagerState, error)
	WalletRecords(ctx context.Context, issuer common.Address) ([]contracts.WalletRecord, error)
	InfoHistory(ctx context.Context, kind platform.InstanceKind, instance common.Address) ([]contracts.InfoEntry, error)
	AssetBalance(ctx context.Context, asset, wallet common.Address) (decimal.Decimal, error)
	StablecoinBalance(ctx context.Context, wallet common.Address) (decimal.Decimal, error)
	TransactionHistory(ctx context.Context, wallet, issuer common.Address) ([]history.Record, error)
}

// Discovery is the instance enumeration surface.
type Discovery interface {
	ListIssuers(ctx context.Context) ([]common.Address, error)
	ListForKind(ctx context.Context, kind platform.InstanceKind) ([]common.Address, error)
	ListForIssuer(ctx context.Context, kind platform.InstanceKind, issuer common.Address) ([]common.Address, error)
	ListForAsset(ctx context.Context, kind platform.InstanceKind, asset common.Address) ([]common.Address, error)
}

// Handler serves the platform HTTP API.
type Handler struct {
	platform  Platform
	discovery Discovery
	logger    *zap.Logger
}

func NewHandler(p Platform, d Discovery, logger *zap.Logger) *Handler {
	return &Handler{platform: p, discovery: d, logger: logger.Named("api")}
}

// RegisterRoutes mounts the API endpoints on the router.
func RegisterRoutes(r chi.Router, p Platform, d Discovery, logger *zap.Logger) {
	h := NewHandler(p, d, logger)

	r.Post("/issuers", apphttp.HandleError(h.createIssuer))
	r.Post("/assets", apphttp.HandleError(h.createAsset))
	r.Post("/campaigns", apphttp.HandleError(h.createCampaign))
	r.Post("/payout-managers", apphttp.HandleError(h.createPayoutManager))
	r.Post("/deployments/issuer-asset-campaign", apphttp.HandleError(h.createIssuerAssetCampaign))
	r.Post("/deployments/asset-campaign", apphttp.HandleError(h.createAssetCampaign))

	r.Get("/issuers", apphttp.HandleError(h.listIssuers))
	r.Get("/issuers/{address}", apphttp.HandleError(h.issuerState))
	r.Get("/issuers/{address}/wallets", apphttp.HandleError(h.walletRecords))
	r.Get("/issuers/{address}/instances/{kind}", apphttp.HandleError(h.listForIssuer))
	r.Get("/instances/{kind}", apphttp.HandleError(h.listForKind))
	r.Get("/instances/{kind}/{address}/info-history", apphttp.HandleError(h.infoHistory))

	r.Get("/assets/{address}", apphttp.HandleError(h.assetState))
	r.Get("/assets/{address}/campaigns", apphttp.HandleError(h.listForAsset(platform.KindCampaign)))
	r.Get("/assets/{address}/payout-managers", apphttp.HandleError(h.listForAsset(platform.KindPayoutManager)))
	r.Post("/assets/{address}/transfers", apphttp.HandleError(h.transferTokens))

	r.Get("/campaigns/{address}", apphttp.HandleError(h.campaignState))
	r.Post("/campaigns/{address}/invest", apphttp.HandleError(h.invest))
	r.Post("/campaigns/{address}/cancel-investment", apphttp.HandleError(h.cancelInvestment))
	r.Post("/campaigns/{address}/claim", apphttp.HandleError(h.claimTokens))
	r.Post("/campaigns/{address}/finalize", apphttp.HandleError(h.finalizeCampaign))
	r.Post("/campaigns/{address}/cancel", apphttp.HandleError(h.cancelCampaign))

	r.Get("/payout-managers/{address}", apphttp.HandleError(h.payoutManagerState))
	r.Post("/payout-managers/{address}/payouts", apphttp.HandleError(h.createPayout))
	r.Post("/payout-managers/{address}/payouts/{payoutID}/release", apphttp.HandleError(h.releaseRevenue))

	r.Post("/issuers/{address}/wallets/{wallet}/approve", apphttp.HandleError(h.approveWallet))
	r.Post("/issuers/{address}/wallets/{wallet}/suspend", apphttp.HandleError(h.suspendWallet))

	r.Get("/wallets/{address}/history", apphttp.HandleError(h.transactionHistory))
	r.Get("/wallets/{address}/balance", apphttp.HandleError(h.balance))
}

// CreationResponse reports one correlated instance creation.
type CreationResponse struct {
	Kind     string `json:"kind"`
	Instance string `json:"instance"`
	Owner    string `json:"owner"`
	ID       string `json:"id"`
	Asset    string `json:"asset,omitempty"`
	TxHash   string `json:"txHash"`
}

func creationResponse(record *platform.CreationRecord) CreationResponse {
	resp := CreationResponse{
		Kind:     string(record.Kind),
		Instance: record.Instance.Hex(),
		Owner:    record.Owner.Hex(),
		ID:       record.ID.String(),
		TxHash:   record.Raw.TxHash.Hex(),
	}
	if record.Asset != (common.Address{}) {
		resp.Asset = record.Asset.Hex()
	}
	return resp
}

// ReceiptResponse reports one mined transaction.
type ReceiptResponse struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	Success     bool   `json:"success"`
}

func receiptResponse(receipt *types.Receipt) ReceiptResponse {
	return ReceiptResponse{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		Success:     receipt.Status == types.ReceiptStatusSuccessful,
	}
}

type createIssuerRequest struct {
	Owner string `json:"owner,omitempty"`
	Info  string `json:"info"`
}

func (h *Handler) createIssuer(w http.ResponseWriter, r *http.Request) error {
	var req createIssuerRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	owner, err := optionalAddress(req.Owner)
	if err != nil {
		return err
	}
	record, err := h.platform.CreateIssuer(r.Context(), platform.CreateIssuerRequest{Owner: owner, Info: req.Info})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, creationResponse(record))
}

type createAssetRequest struct {
	Owner              string          `json:"owner,omitempty"`
	Issuer             string          `json:"issuer"`
	InitialTokenSupply decimal.Decimal `json:"initialTokenSupply"`
	WhitelistRequired  bool            `json:"whitelistRequired"`
	Name               string          `json:"name"`
	Symbol             string          `json:"symbol"`
	Info               string          `json:"info"`
}

func (h *Handler) createAsset(w http.ResponseWriter, r *http.Request) error {
	var req createAssetRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	owner, err := optionalAddress(req.Owner)
	if err != nil {
		return err
	}
	issuer, err := requiredAddress(req.Issuer, "issuer")
	if err != nil {
		return err
	}
	record, err := h.platform.CreateAsset(r.Context(), platform.CreateAssetRequest{
		Owner:              owner,
		Issuer:             issuer,
		InitialTokenSupply: req.InitialTokenSupply,
		WhitelistRequired:  req.WhitelistRequired,
		Name:               req.Name,
		Symbol:             req.Symbol,
		Info:               req.Info,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, creationResponse(record))
}

type createCampaignRequest struct {
	Owner             string          `json:"owner,omitempty"`
	Asset             string          `json:"asset"`
	PricePerToken     decimal.Decimal `json:"pricePerToken"`
	SoftCap           decimal.Decimal `json:"softCap"`
	MinInvestment     decimal.Decimal `json:"minInvestment"`
	MaxInvestment     decimal.Decimal `json:"maxInvestment"`
	WhitelistRequired bool            `json:"whitelistRequired"`
	Info              string          `json:"info"`
}

func (h *Handler) createCampaign(w http.ResponseWriter, r *http.Request) error {
	var req createCampaignRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	owner, err := optionalAddress(req.Owner)
	if err != nil {
		return err
	}
	asset, err := requiredAddress(req.Asset, "asset")
	if err != nil {
		return err
	}
	record, err := h.platform.CreateCampaign(r.Context(), platform.CreateCampaignRequest{
		Owner:             owner,
		Asset:             asset,
		PricePerToken:     req.PricePerToken,
		SoftCap:           req.SoftCap,
		MinInvestment:     req.MinInvestment,
		MaxInvestment:     req.MaxInvestment,
		WhitelistRequired: req.WhitelistRequired,
		Info:              req.Info,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, creationResponse(record))
}

type createPayoutManagerRequest struct {
	Owner string `json:"owner,omitempty"`
	Asset string `json:"asset"`
	Info  string `json:"info"`
}

func (h *Handler) createPayoutManager(w http.ResponseWriter, r *http.Request) error {
	var req createPayoutManagerRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	owner, err := optionalAddress(req.Owner)
	if err != nil {
		return err
	}
	asset, err := requiredAddress(req.Asset, "asset")
	if err != nil {
		return err
	}
	record, err := h.platform.CreatePayoutManager(r.Context(), platform.CreatePayoutManagerRequest{
		Owner: owner,
		Asset: asset,
		Info:  req.Info,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, creationResponse(record))
}

// CombinedCreationResponse reports every instance created by one combined
// deployment transaction.
type CombinedCreationResponse struct {
	Issuer   *CreationResponse `json:"issuer,omitempty"`
	Asset    *CreationResponse `json:"asset"`
	Campaign *CreationResponse `json:"campaign"`
}

func combinedResponse(combined *platform.CombinedCreation) CombinedCreationResponse {
	resp := CombinedCreationResponse{}
	if combined.Issuer != nil {
		issuer := creationResponse(combined.Issuer)
		resp.Issuer = &issuer
	}
	asset := creationResponse(combined.Asset)
	campaign := creationResponse(combined.Campaign)
	resp.Asset = &asset
	resp.Campaign = &campaign
	return resp
}

type combinedDeploymentRequest struct {
	Issuer     string `json:"issuer,omitempty"`
	IssuerInfo string `json:"issuerInfo,omitempty"`

	AssetInitialTokenSupply decimal.Decimal `json:"assetInitialTokenSupply"`
	AssetWhitelistRequired  bool            `json:"assetWhitelistRequired"`
	AssetName               string          `json:"assetName"`
	AssetSymbol             string          `json:"assetSymbol"`
	AssetInfo               string          `json:"assetInfo"`

	CampaignPricePerToken     decimal.Decimal `json:"campaignPricePerToken"`
	CampaignSoftCap           decimal.Decimal `json:"campaignSoftCap"`
	CampaignMinInvestment     decimal.Decimal `json:"campaignMinInvestment"`
	CampaignMaxInvestment     decimal.Decimal `json:"campaignMaxInvestment"`
	CampaignTokensToSell      decimal.Decimal `json:"campaignTokensToSell"`
	CampaignWhitelistRequired bool            `json:"campaignWhitelistRequired"`
	CampaignInfo              string          `json:"campaignInfo"`
}

func (h *Handler) createIssuerAssetCampaign(w http.ResponseWriter, r *http.Request) error {
	var req combinedDeploymentRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	combined, err := h.platform.CreateIssuerAssetCampaign(r.Context(), platform.CreateIssuerAssetCampaignRequest{
		IssuerInfo:                req.IssuerInfo,
		AssetInitialTokenSupply:   req.AssetInitialTokenSupply,
		AssetWhitelistRequired:    req.AssetWhitelistRequired,
		AssetName:                 req.AssetName,
		AssetSymbol:               req.AssetSymbol,
		AssetInfo:                 req.AssetInfo,
		CampaignPricePerToken:     req.CampaignPricePerToken,
		CampaignSoftCap:           req.CampaignSoftCap,
		CampaignMinInvestment:     req.CampaignMinInvestment,
		CampaignMaxInvestment:     req.CampaignMaxInvestment,
		CampaignTokensToSell:      req.CampaignTokensToSell,
		CampaignWhitelistRequired: req.CampaignWhitelistRequired,
		CampaignInfo:              req.CampaignInfo,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, combinedResponse(combined))
}

func (h *Handler) createAssetCampaign(w http.ResponseWriter, r *http.Request) error {
	var req combinedDeploymentRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	issuer, err := requiredAddress(req.Issuer, "issuer")
	if err != nil {
		return err
	}
	combined, err := h.platform.CreateAssetCampaign(r.Context(), platform.CreateAssetCampaignRequest{
		Issuer:                    issuer,
		AssetInitialTokenSupply:   req.AssetInitialTokenSupply,
		AssetWhitelistRequired:    req.AssetWhitelistRequired,
		AssetName:                 req.AssetName,
		AssetSymbol:               req.AssetSymbol,
		AssetInfo:                 req.AssetInfo,
		CampaignPricePerToken:     req.CampaignPricePerToken,
		CampaignSoftCap:           req.CampaignSoftCap,
		CampaignMinInvestment:     req.CampaignMinInvestment,
		CampaignMaxInvestment:     req.CampaignMaxInvestment,
		CampaignTokensToSell:      req.CampaignTokensToSell,
		CampaignWhitelistRequired: req.CampaignWhitelistRequired,
		CampaignInfo:              req.CampaignInfo,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, combinedResponse(combined))
}

func decodeBody(r *http.Request, out interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

func requiredAddress(raw, field string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, apperrors.BadRequestError(nil,
			fmt.Sprintf("invalid %s address: %q", field, raw))
	}
	return common.HexToAddress(raw), nil
}

func optionalAddress(raw string) (common.Address, error) {
	if raw == "" {
		return common.Address{}, nil
	}
	return requiredAddress(raw, "owner")
}

func pathAddress(r *http.Request, param string) (common.Address, error) {
	return requiredAddress(chi.URLParam(r, param), param)
}

func pathKind(r *http.Request) (platform.InstanceKind, error) {
	switch chi.URLParam(r, "kind") {
	case "issuers":
		return platform.KindIssuer, nil
	case "assets":
		return platform.KindAsset, nil
	case "campaigns":
		return platform.KindCampaign, nil
	case "payout-managers":
		return platform.KindPayoutManager, nil
	default:
		return "", apperrors.BadRequestError(nil,
			fmt.Sprintf("unknown instance kind %q", chi.URLParam(r, "kind")))
	}
}
