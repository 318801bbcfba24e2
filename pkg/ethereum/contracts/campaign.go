package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var cfManagerABI = mustParseABI("CfManagerSoftcap", `[
	{"type":"function","name":"invest","stateMutability":"nonpayable",
		"inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"cancelInvestment","stateMutability":"nonpayable",
		"inputs":[],"outputs":[]},
	{"type":"function","name":"claim","stateMutability":"nonpayable",
		"inputs":[{"name":"investor","type":"address"}],"outputs":[]},
	{"type":"function","name":"finalize","stateMutability":"nonpayable",
		"inputs":[],"outputs":[]},
	{"type":"function","name":"cancelCampaign","stateMutability":"nonpayable",
		"inputs":[],"outputs":[]},
	{"type":"function","name":"setInfo","stateMutability":"nonpayable",
		"inputs":[{"name":"info","type":"string"}],"outputs":[]},
	{"type":"function","name":"getInfoHistory","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"tuple[]","components":[
			{"name":"info","type":"string"},
			{"name":"timestamp","type":"uint256"}]}]},
	{"type":"function","name":"getState","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"tuple","components":[
			{"name":"id","type":"uint256"},
			{"name":"owner","type":"address"},
			{"name":"asset","type":"address"},
			{"name":"tokenPrice","type":"uint256"},
			{"name":"softCap","type":"uint256"},
			{"name":"whitelistRequired","type":"bool"},
			{"name":"finalized","type":"bool"},
			{"name":"cancelled","type":"bool"},
			{"name":"totalClaimableTokens","type":"uint256"},
			{"name":"totalInvestorsCount","type":"uint256"},
			{"name":"totalClaimsCount","type":"uint256"},
			{"name":"totalFundsRaised","type":"uint256"},
			{"name":"info","type":"string"}]}]},
	{"type":"event","name":"Invest","anonymous":false,"inputs":[
		{"name":"investor","type":"address","indexed":true},
		{"name":"tokenAmount","type":"uint256","indexed":false},
		{"name":"tokenValue","type":"uint256","indexed":false},
		{"name":"timestamp","type":"uint256","indexed":false}]},
	{"type":"event","name":"CancelInvestment","anonymous":false,"inputs":[
		{"name":"investor","type":"address","indexed":true},
		{"name":"tokenAmount","type":"uint256","indexed":false},
		{"name":"tokenValue","type":"uint256","indexed":false},
		{"name":"timestamp","type":"uint256","indexed":false}]},
	{"type":"event","name":"Claim","anonymous":false,"inputs":[
		{"name":"investor","type":"address","indexed":true},
		{"name":"tokenAmount","type":"uint256","indexed":false},
		{"name":"tokenValue","type":"uint256","indexed":false},
		{"name":"timestamp","type":"uint256","indexed":false}]}
]`)

// CampaignState mirrors the campaign contract getState() response.
type CampaignState struct {
	Id                   *big.Int
	Owner                common.Address
	Asset                common.Address
	TokenPrice           *big.Int
	SoftCap              *big.Int
	WhitelistRequired    bool
	Finalized            bool
	Cancelled            bool
	TotalClaimableTokens *big.Int
	TotalInvestorsCount  *big.Int
	TotalClaimsCount     *big.Int
	TotalFundsRaised     *big.Int
	Info                 string
}

// CampaignEvent is the shared shape of the Invest, CancelInvestment and
// Claim events: everything the campaign reports about one investor action,
// including the block timestamp baked into the payload.
type CampaignEvent struct {
	Investor    common.Address
	TokenAmount *big.Int
	TokenValue  *big.Int
	Timestamp   *big.Int
	Raw         types.Log
}

// CfManager binds one deployed crowdfunding campaign instance.
type CfManager struct {
	contract
}

func NewCfManager(address common.Address, backend bind.ContractBackend) *CfManager {
	return &CfManager{newContract(address, cfManagerABI, backend)}
}

// Invest places an investment of the given stablecoin amount.
func (c *CfManager) Invest(opts *bind.TransactOpts, amount *big.Int) (*types.Transaction, error) {
	return c.bound.Transact(opts, "invest", amount)
}

// CancelInvestment returns the caller's full invested amount.
func (c *CfManager) CancelInvestment(opts *bind.TransactOpts) (*types.Transaction, error) {
	return c.bound.Transact(opts, "cancelInvestment")
}

// Claim transfers claimable tokens to the investor after finalization.
func (c *CfManager) Claim(opts *bind.TransactOpts, investor common.Address) (*types.Transaction, error) {
	return c.bound.Transact(opts, "claim", investor)
}

// Finalize closes a campaign that reached its soft cap.
func (c *CfManager) Finalize(opts *bind.TransactOpts) (*types.Transaction, error) {
	return c.bound.Transact(opts, "finalize")
}

// CancelCampaign cancels an active campaign.
func (c *CfManager) CancelCampaign(opts *bind.TransactOpts) (*types.Transaction, error) {
	return c.bound.Transact(opts, "cancelCampaign")
}

// SetInfo updates the campaign info hash.
func (c *CfManager) SetInfo(opts *bind.TransactOpts, info string) (*types.Transaction, error) {
	return c.bound.Transact(opts, "setInfo", info)
}

// GetInfoHistory returns every info hash ever set, oldest first.
func (c *CfManager) GetInfoHistory(ctx context.Context) ([]InfoEntry, error) {
	var out []interface{}
	if err := c.call(ctx, &out, "getInfoHistory"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]InfoEntry)).(*[]InfoEntry), nil
}

// GetState returns the campaign state snapshot.
func (c *CfManager) GetState(ctx context.Context) (*CampaignState, error) {
	var out []interface{}
	if err := c.call(ctx, &out, "getState"); err != nil {
		return nil, err
	}
	return abi.ConvertType(out[0], new(CampaignState)).(*CampaignState), nil
}

// FilterInvest returns historical Invest events for the given investors.
func (c *CfManager) FilterInvest(ctx context.Context, investor []common.Address) ([]CampaignEvent, error) {
	return c.filterCampaignEvents(ctx, "Invest", investor)
}

// FilterCancelInvestment returns historical CancelInvestment events for the given investors.
func (c *CfManager) FilterCancelInvestment(ctx context.Context, investor []common.Address) ([]CampaignEvent, error) {
	return c.filterCampaignEvents(ctx, "CancelInvestment", investor)
}

// FilterClaim returns historical Claim events for the given investors.
func (c *CfManager) FilterClaim(ctx context.Context, investor []common.Address) ([]CampaignEvent, error) {
	return c.filterCampaignEvents(ctx, "Claim", investor)
}

func (c *CfManager) filterCampaignEvents(ctx context.Context, event string, investor []common.Address) ([]CampaignEvent, error) {
	logs, err := c.filterLogs(ctx, event, addressTopics(investor))
	if err != nil {
		return nil, err
	}
	events := make([]CampaignEvent, 0, len(logs))
	for _, lg := range logs {
		var ev CampaignEvent
		if err := unpackLog(cfManagerABI, &ev, event, lg); err != nil {
			return nil, err
		}
		ev.Raw = lg
		events = append(events, ev)
	}
	return events, nil
}
