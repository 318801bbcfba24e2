package api

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/ampnet/tokenizer-middleware/pkg/app/errors"
	"github.com/ampnet/tokenizer-middleware/pkg/history"
	"github.com/ampnet/tokenizer-middleware/pkg/platform"
)

func newTestRouter(p Platform, d Discovery) *chi.Mux {
	r := chi.NewRouter()
	RegisterRoutes(r, p, d, zap.NewNop())
	return r
}

func serve(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

var (
	testIssuer   = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testInstance = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testWallet   = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func TestCreateIssuer(t *testing.T) {
	p := &mockPlatform{
		CreateIssuerFunc: func(ctx context.Context, req platform.CreateIssuerRequest) (*platform.CreationRecord, error) {
			if req.Info != "ipfs-hash" {
				t.Errorf("expected info ipfs-hash, got %q", req.Info)
			}
			return &platform.CreationRecord{
				Kind:     platform.KindIssuer,
				Instance: testInstance,
				Owner:    testWallet,
				ID:       big.NewInt(3),
				Raw:      types.Log{TxHash: common.HexToHash("0xdd")},
			}, nil
		},
	}
	router := newTestRouter(p, &mockDiscovery{})

	rec := serve(t, router, http.MethodPost, "/issuers", `{"info":"ipfs-hash"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp CreationResponse
	decodeResponse(t, rec, &resp)
	if resp.Kind != "ISSUER" || resp.Instance != testInstance.Hex() || resp.ID != "3" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCreateIssuer_InvalidOwner(t *testing.T) {
	router := newTestRouter(&mockPlatform{}, &mockDiscovery{})

	rec := serve(t, router, http.MethodPost, "/issuers", `{"owner":"not-an-address"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	decodeResponse(t, rec, &resp)
	if resp.Code != http.StatusBadRequest || resp.Error == "" {
		t.Errorf("unexpected error body: %+v", resp)
	}
}

func TestCreateAsset_InvalidJSON(t *testing.T) {
	router := newTestRouter(&mockPlatform{}, &mockDiscovery{})

	rec := serve(t, router, http.MethodPost, "/assets", `{"issuer": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateCampaign_CreationNotFound(t *testing.T) {
	p := &mockPlatform{
		CreateCampaignFunc: func(ctx context.Context, req platform.CreateCampaignRequest) (*platform.CreationRecord, error) {
			return nil, apperrors.CreationNotFoundError(nil, "no CfManagerSoftcapCreated event in receipt")
		},
	}
	router := newTestRouter(p, &mockDiscovery{})

	body := `{"asset":"` + testInstance.Hex() + `","pricePerToken":"1"}`
	rec := serve(t, router, http.MethodPost, "/campaigns", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListIssuers(t *testing.T) {
	d := &mockDiscovery{
		ListIssuersFunc: func(ctx context.Context) ([]common.Address, error) {
			return []common.Address{testIssuer, testInstance}, nil
		},
	}
	router := newTestRouter(&mockPlatform{}, d)

	rec := serve(t, router, http.MethodGet, "/issuers", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp instancesResponse
	decodeResponse(t, rec, &resp)
	if len(resp.Instances) != 2 || resp.Instances[0] != testIssuer.Hex() {
		t.Errorf("unexpected instances: %v", resp.Instances)
	}
}

func TestListForKind_UnknownKind(t *testing.T) {
	router := newTestRouter(&mockPlatform{}, &mockDiscovery{})

	rec := serve(t, router, http.MethodGet, "/instances/factories", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListForIssuer(t *testing.T) {
	d := &mockDiscovery{
		ListForIssuerFunc: func(ctx context.Context, kind platform.InstanceKind, issuer common.Address) ([]common.Address, error) {
			if kind != platform.KindCampaign {
				t.Errorf("expected kind CAMPAIGN, got %s", kind)
			}
			if issuer != testIssuer {
				t.Errorf("expected issuer %s, got %s", testIssuer.Hex(), issuer.Hex())
			}
			return []common.Address{testInstance}, nil
		},
	}
	router := newTestRouter(&mockPlatform{}, d)

	rec := serve(t, router, http.MethodGet, "/issuers/"+testIssuer.Hex()+"/instances/campaigns", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDiscoveryUnavailable(t *testing.T) {
	d := &mockDiscovery{
		ListIssuersFunc: func(ctx context.Context) ([]common.Address, error) {
			return nil, apperrors.DiscoveryUnavailableError(errors.New("dial tcp"), "issuer factory enumeration failed")
		},
	}
	router := newTestRouter(&mockPlatform{}, d)

	rec := serve(t, router, http.MethodGet, "/issuers", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestInvest(t *testing.T) {
	p := &mockPlatform{
		InvestFunc: func(ctx context.Context, campaign common.Address, amount decimal.Decimal) (*types.Receipt, error) {
			if campaign != testInstance {
				t.Errorf("expected campaign %s, got %s", testInstance.Hex(), campaign.Hex())
			}
			if !amount.Equal(decimal.RequireFromString("250.5")) {
				t.Errorf("expected amount 250.5, got %s", amount)
			}
			return &types.Receipt{
				Status:      types.ReceiptStatusSuccessful,
				TxHash:      common.HexToHash("0xee"),
				BlockNumber: big.NewInt(99),
			}, nil
		},
	}
	router := newTestRouter(p, &mockDiscovery{})

	rec := serve(t, router, http.MethodPost, "/campaigns/"+testInstance.Hex()+"/invest", `{"amount":"250.5"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp ReceiptResponse
	decodeResponse(t, rec, &resp)
	if !resp.Success || resp.BlockNumber != 99 {
		t.Errorf("unexpected receipt response: %+v", resp)
	}
}

func TestReleaseRevenue_InvalidPayoutID(t *testing.T) {
	router := newTestRouter(&mockPlatform{}, &mockDiscovery{})

	rec := serve(t, router, http.MethodPost,
		"/payout-managers/"+testInstance.Hex()+"/payouts/abc/release",
		`{"investor":"`+testWallet.Hex()+`"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBalance(t *testing.T) {
	p := &mockPlatform{
		StablecoinBalanceFunc: func(ctx context.Context, wallet common.Address) (decimal.Decimal, error) {
			return decimal.RequireFromString("12.5"), nil
		},
		AssetBalanceFunc: func(ctx context.Context, asset, wallet common.Address) (decimal.Decimal, error) {
			if asset != testInstance {
				t.Errorf("expected asset %s, got %s", testInstance.Hex(), asset.Hex())
			}
			return decimal.RequireFromString("7"), nil
		},
	}
	router := newTestRouter(p, &mockDiscovery{})

	rec := serve(t, router, http.MethodGet, "/wallets/"+testWallet.Hex()+"/balance", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Balance string `json:"balance"`
	}
	decodeResponse(t, rec, &resp)
	if resp.Balance != "12.5" {
		t.Errorf("expected stablecoin balance 12.5, got %s", resp.Balance)
	}

	rec = serve(t, router, http.MethodGet,
		"/wallets/"+testWallet.Hex()+"/balance?asset="+testInstance.Hex(), "")
	decodeResponse(t, rec, &resp)
	if resp.Balance != "7" {
		t.Errorf("expected asset balance 7, got %s", resp.Balance)
	}
}

func TestTransactionHistory(t *testing.T) {
	ts := time.Unix(1_600_000_000, 0).UTC()
	p := &mockPlatform{
		TransactionHistoryFunc: func(ctx context.Context, wallet, issuer common.Address) ([]history.Record, error) {
			if wallet != testWallet || issuer != testIssuer {
				t.Errorf("unexpected args: wallet %s issuer %s", wallet.Hex(), issuer.Hex())
			}
			return []history.Record{
				{Kind: history.KindInvest, Amount: big.NewInt(200), Timestamp: ts},
			}, nil
		},
	}
	router := newTestRouter(p, &mockDiscovery{})

	rec := serve(t, router, http.MethodGet,
		"/wallets/"+testWallet.Hex()+"/history?issuer="+testIssuer.Hex(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp HistoryResponse
	decodeResponse(t, rec, &resp)
	if resp.Incomplete {
		t.Error("expected complete history")
	}
	if len(resp.Transactions) != 1 || resp.Transactions[0].Kind != history.KindInvest {
		t.Errorf("unexpected transactions: %v", resp.Transactions)
	}
}

func TestTransactionHistory_MissingIssuer(t *testing.T) {
	router := newTestRouter(&mockPlatform{}, &mockDiscovery{})

	rec := serve(t, router, http.MethodGet, "/wallets/"+testWallet.Hex()+"/history", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHistory_Partial(t *testing.T) {
	failed := common.HexToAddress("0x4444444444444444444444444444444444444444")
	p := &mockPlatform{
		TransactionHistoryFunc: func(ctx context.Context, wallet, issuer common.Address) ([]history.Record, error) {
			records := []history.Record{
				{Kind: history.KindTokenTransfer, Amount: big.NewInt(5)},
			}
			return records, &history.PartialError{Failures: []history.InstanceFailure{
				{Instance: failed, Event: "Invest", Err: errors.New("timeout")},
			}}
		},
	}
	router := newTestRouter(p, &mockDiscovery{})

	rec := serve(t, router, http.MethodGet,
		"/wallets/"+testWallet.Hex()+"/history?issuer="+testIssuer.Hex(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for partial history, got %d", rec.Code)
	}
	var resp HistoryResponse
	decodeResponse(t, rec, &resp)
	if !resp.Incomplete {
		t.Error("expected incomplete flag")
	}
	if len(resp.Failures) != 1 || resp.Failures[0].Instance != failed.Hex() || resp.Failures[0].Event != "Invest" {
		t.Errorf("unexpected failures: %v", resp.Failures)
	}
	if len(resp.Transactions) != 1 {
		t.Errorf("expected surviving transaction, got %v", resp.Transactions)
	}
}

func TestTransactionHistory_EmptyIsNotNull(t *testing.T) {
	router := newTestRouter(&mockPlatform{}, &mockDiscovery{})

	rec := serve(t, router, http.MethodGet,
		"/wallets/"+testWallet.Hex()+"/history?issuer="+testIssuer.Hex(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"transactions":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestUnexpectedError(t *testing.T) {
	p := &mockPlatform{
		CancelInvestmentFunc: func(ctx context.Context, campaign common.Address) (*types.Receipt, error) {
			return nil, errors.New("boom")
		},
	}
	router := newTestRouter(p, &mockDiscovery{})

	rec := serve(t, router, http.MethodPost, "/campaigns/"+testInstance.Hex()+"/cancel-investment", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decodeResponse(t, rec, &resp)
	if resp.Error != "Unexpected Service Error" {
		t.Errorf("unexpected error message %q", resp.Error)
	}
}
