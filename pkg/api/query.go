package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	apperrors "github.com/ampnet/tokenizer-middleware/pkg/app/errors"
	"github.com/ampnet/tokenizer-middleware/pkg/history"
	"github.com/ampnet/tokenizer-middleware/pkg/platform"
)

type instancesResponse struct {
	Instances []string `json:"instances"`
}

func addressList(addresses []common.Address) instancesResponse {
	out := make([]string, len(addresses))
	for i, a := range addresses {
		out[i] = a.Hex()
	}
	return instancesResponse{Instances: out}
}

func (h *Handler) listIssuers(w http.ResponseWriter, r *http.Request) error {
	instances, err := h.discovery.ListIssuers(r.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, addressList(instances))
}

func (h *Handler) listForKind(w http.ResponseWriter, r *http.Request) error {
	kind, err := pathKind(r)
	if err != nil {
		return err
	}
	if kind == platform.KindIssuer {
		return h.listIssuers(w, r)
	}
	instances, err := h.discovery.ListForKind(r.Context(), kind)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, addressList(instances))
}

func (h *Handler) listForIssuer(w http.ResponseWriter, r *http.Request) error {
	issuer, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	kind, err := pathKind(r)
	if err != nil {
		return err
	}
	instances, err := h.discovery.ListForIssuer(r.Context(), kind, issuer)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, addressList(instances))
}

func (h *Handler) listForAsset(kind platform.InstanceKind) func(http.ResponseWriter, *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		asset, err := pathAddress(r, "address")
		if err != nil {
			return err
		}
		instances, err := h.discovery.ListForAsset(r.Context(), kind, asset)
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusOK, addressList(instances))
	}
}

func (h *Handler) issuerState(w http.ResponseWriter, r *http.Request) error {
	issuer, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	state, err := h.platform.IssuerState(r.Context(), issuer)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":             state.Id.String(),
		"owner":          state.Owner.Hex(),
		"stablecoin":     state.Stablecoin.Hex(),
		"walletApprover": state.WalletApprover.Hex(),
		"info":           state.Info,
	})
}

func (h *Handler) assetState(w http.ResponseWriter, r *http.Request) error {
	asset, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	state, err := h.platform.AssetState(r.Context(), asset)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":                 state.Id.String(),
		"owner":              state.Owner.Hex(),
		"mirroredToken":      state.MirroredToken.Hex(),
		"initialTokenSupply": platform.FromWei(state.InitialTokenSupply),
		"whitelistRequired":  state.WhitelistRequiredForTransfer,
		"issuer":             state.Issuer.Hex(),
		"info":               state.Info,
		"name":               state.Name,
		"symbol":             state.Symbol,
	})
}

func (h *Handler) campaignState(w http.ResponseWriter, r *http.Request) error {
	campaign, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	state, err := h.platform.CampaignState(r.Context(), campaign)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":                   state.Id.String(),
		"owner":                state.Owner.Hex(),
		"asset":                state.Asset.Hex(),
		"tokenPrice":           platform.FromWei(state.TokenPrice),
		"softCap":              platform.FromWei(state.SoftCap),
		"whitelistRequired":    state.WhitelistRequired,
		"finalized":            state.Finalized,
		"cancelled":            state.Cancelled,
		"totalClaimableTokens": platform.FromWei(state.TotalClaimableTokens),
		"totalInvestorsCount":  state.TotalInvestorsCount.String(),
		"totalClaimsCount":     state.TotalClaimsCount.String(),
		"totalFundsRaised":     platform.FromWei(state.TotalFundsRaised),
		"info":                 state.Info,
	})
}

func (h *Handler) payoutManagerState(w http.ResponseWriter, r *http.Request) error {
	manager, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	state, err := h.platform.PayoutManagerState(r.Context(), manager)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":    state.Id.String(),
		"owner": state.Owner.Hex(),
		"asset": state.Asset.Hex(),
		"info":  state.Info,
	})
}

func (h *Handler) walletRecords(w http.ResponseWriter, r *http.Request) error {
	issuer, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	records, err := h.platform.WalletRecords(r.Context(), issuer)
	if err != nil {
		return err
	}
	type walletEntry struct {
		Wallet      string `json:"wallet"`
		Whitelisted bool   `json:"whitelisted"`
	}
	out := make([]walletEntry, len(records))
	for i, rec := range records {
		out[i] = walletEntry{Wallet: rec.Wallet.Hex(), Whitelisted: rec.Whitelisted}
	}
	return writeJSON(w, http.StatusOK, map[string]interface{}{"wallets": out})
}

func (h *Handler) infoHistory(w http.ResponseWriter, r *http.Request) error {
	kind, err := pathKind(r)
	if err != nil {
		return err
	}
	instance, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	entries, err := h.platform.InfoHistory(r.Context(), kind, instance)
	if err != nil {
		return err
	}
	type infoEntry struct {
		Info      string    `json:"info"`
		Timestamp time.Time `json:"timestamp"`
	}
	out := make([]infoEntry, len(entries))
	for i, e := range entries {
		out[i] = infoEntry{Info: e.Info, Timestamp: time.Unix(e.Timestamp.Int64(), 0).UTC()}
	}
	return writeJSON(w, http.StatusOK, map[string]interface{}{"history": out})
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) error {
	wallet, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	var balance decimal.Decimal
	if raw := r.URL.Query().Get("asset"); raw != "" {
		asset, err := requiredAddress(raw, "asset")
		if err != nil {
			return err
		}
		balance, err = h.platform.AssetBalance(r.Context(), asset, wallet)
		if err != nil {
			return err
		}
	} else {
		balance, err = h.platform.StablecoinBalance(r.Context(), wallet)
		if err != nil {
			return err
		}
	}
	return writeJSON(w, http.StatusOK, map[string]interface{}{"balance": balance})
}

// HistoryResponse is the wallet history payload. Incomplete is set when some
// instance queries failed; the listed transactions are still valid.
type HistoryResponse struct {
	Transactions []history.Record `json:"transactions"`
	Incomplete   bool             `json:"incomplete"`
	Failures     []HistoryFailure `json:"failures,omitempty"`
}

type HistoryFailure struct {
	Instance string `json:"instance"`
	Event    string `json:"event"`
}

func (h *Handler) transactionHistory(w http.ResponseWriter, r *http.Request) error {
	wallet, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	issuer, err := requiredAddress(r.URL.Query().Get("issuer"), "issuer")
	if err != nil {
		return err
	}
	records, err := h.platform.TransactionHistory(r.Context(), wallet, issuer)
	resp := HistoryResponse{Transactions: records}
	if resp.Transactions == nil {
		resp.Transactions = []history.Record{}
	}
	if err != nil {
		var partial *history.PartialError
		if !errors.As(err, &partial) {
			return err
		}
		resp.Incomplete = true
		for _, f := range partial.Failures {
			resp.Failures = append(resp.Failures, HistoryFailure{
				Instance: f.Instance.Hex(),
				Event:    f.Event,
			})
		}
	}
	return writeJSON(w, http.StatusOK, resp)
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) invest(w http.ResponseWriter, r *http.Request) error {
	campaign, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	receipt, err := h.platform.Invest(r.Context(), campaign, req.Amount)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, receiptResponse(receipt))
}

func (h *Handler) cancelInvestment(w http.ResponseWriter, r *http.Request) error {
	campaign, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	receipt, err := h.platform.CancelInvestment(r.Context(), campaign)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, receiptResponse(receipt))
}

func (h *Handler) claimTokens(w http.ResponseWriter, r *http.Request) error {
	campaign, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	var req struct {
		Investor string `json:"investor,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	investor, err := optionalAddress(req.Investor)
	if err != nil {
		return err
	}
	receipt, err := h.platform.ClaimTokens(r.Context(), campaign, investor)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, receiptResponse(receipt))
}

func (h *Handler) finalizeCampaign(w http.ResponseWriter, r *http.Request) error {
	campaign, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	receipt, err := h.platform.FinalizeCampaign(r.Context(), campaign)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, receiptResponse(receipt))
}

func (h *Handler) cancelCampaign(w http.ResponseWriter, r *http.Request) error {
	campaign, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	receipt, err := h.platform.CancelCampaign(r.Context(), campaign)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, receiptResponse(receipt))
}

func (h *Handler) createPayout(w http.ResponseWriter, r *http.Request) error {
	manager, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	var req struct {
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
	}
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	receipt, err := h.platform.CreatePayout(r.Context(), manager, req.Description, req.Amount)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, receiptResponse(receipt))
}

func (h *Handler) releaseRevenue(w http.ResponseWriter, r *http.Request) error {
	manager, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	payoutID, err := strconv.ParseInt(chi.URLParam(r, "payoutID"), 10, 64)
	if err != nil {
		return apperrors.BadRequestError(err, "invalid payout id")
	}
	var req struct {
		Investor string `json:"investor"`
	}
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	investor, err := requiredAddress(req.Investor, "investor")
	if err != nil {
		return err
	}
	receipt, err := h.platform.ReleaseRevenue(r.Context(), manager, investor, payoutID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, receiptResponse(receipt))
}

func (h *Handler) approveWallet(w http.ResponseWriter, r *http.Request) error {
	issuer, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	wallet, err := pathAddress(r, "wallet")
	if err != nil {
		return err
	}
	receipt, err := h.platform.ApproveWallet(r.Context(), issuer, wallet)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, receiptResponse(receipt))
}

func (h *Handler) suspendWallet(w http.ResponseWriter, r *http.Request) error {
	issuer, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	wallet, err := pathAddress(r, "wallet")
	if err != nil {
		return err
	}
	receipt, err := h.platform.SuspendWallet(r.Context(), issuer, wallet)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, receiptResponse(receipt))
}

func (h *Handler) transferTokens(w http.ResponseWriter, r *http.Request) error {
	asset, err := pathAddress(r, "address")
	if err != nil {
		return err
	}
	var req struct {
		Recipient string          `json:"recipient"`
		Amount    decimal.Decimal `json:"amount"`
	}
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	recipient, err := requiredAddress(req.Recipient, "recipient")
	if err != nil {
		return err
	}
	receipt, err := h.platform.TransferTokens(r.Context(), asset, recipient, req.Amount)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, receiptResponse(receipt))
}
