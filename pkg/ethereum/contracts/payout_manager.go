package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var payoutManagerABI = mustParseABI("PayoutManager", `[
	{"type":"function","name":"createPayout","stateMutability":"nonpayable","inputs":[
		{"name":"description","type":"string"},
		{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"release","stateMutability":"nonpayable","inputs":[
		{"name":"account","type":"address"},
		{"name":"payoutId","type":"uint256"}],"outputs":[]},
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
			{"name":"info","type":"string"}]}]},
	{"type":"event","name":"Release","anonymous":false,"inputs":[
		{"name":"investor","type":"address","indexed":true},
		{"name":"asset","type":"address","indexed":false},
		{"name":"payoutId","type":"uint256","indexed":false},
		{"name":"amount","type":"uint256","indexed":false},
		{"name":"timestamp","type":"uint256","indexed":false}]}
]`)

// PayoutManagerState mirrors the payout manager contract getState() response.
type PayoutManagerState struct {
	Id    *big.Int
	Owner common.Address
	Asset common.Address
	Info  string
}

// Release is emitted when an investor claims their share of one payout.
type Release struct {
	Investor  common.Address
	Asset     common.Address
	PayoutId  *big.Int
	Amount    *big.Int
	Timestamp *big.Int
	Raw       types.Log
}

// PayoutManager binds one deployed payout manager instance.
type PayoutManager struct {
	contract
}

func NewPayoutManager(address common.Address, backend bind.ContractBackend) *PayoutManager {
	return &PayoutManager{newContract(address, payoutManagerABI, backend)}
}

// CreatePayout snapshots the holder structure and opens a new payout of the given amount.
func (p *PayoutManager) CreatePayout(opts *bind.TransactOpts, description string, amount *big.Int) (*types.Transaction, error) {
	return p.bound.Transact(opts, "createPayout", description, amount)
}

// Release transfers the account's share of the given payout to its wallet.
func (p *PayoutManager) Release(opts *bind.TransactOpts, account common.Address, payoutID *big.Int) (*types.Transaction, error) {
	return p.bound.Transact(opts, "release", account, payoutID)
}

// SetInfo updates the payout manager info hash.
func (p *PayoutManager) SetInfo(opts *bind.TransactOpts, info string) (*types.Transaction, error) {
	return p.bound.Transact(opts, "setInfo", info)
}

// GetInfoHistory returns every info hash ever set, oldest first.
func (p *PayoutManager) GetInfoHistory(ctx context.Context) ([]InfoEntry, error) {
	var out []interface{}
	if err := p.call(ctx, &out, "getInfoHistory"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]InfoEntry)).(*[]InfoEntry), nil
}

// GetState returns the payout manager state snapshot.
func (p *PayoutManager) GetState(ctx context.Context) (*PayoutManagerState, error) {
	var out []interface{}
	if err := p.call(ctx, &out, "getState"); err != nil {
		return nil, err
	}
	return abi.ConvertType(out[0], new(PayoutManagerState)).(*PayoutManagerState), nil
}

// FilterRelease returns historical Release events for the given investors.
func (p *PayoutManager) FilterRelease(ctx context.Context, investor []common.Address) ([]Release, error) {
	logs, err := p.filterLogs(ctx, "Release", addressTopics(investor))
	if err != nil {
		return nil, err
	}
	events := make([]Release, 0, len(logs))
	for _, lg := range logs {
		var ev Release
		if err := unpackLog(payoutManagerABI, &ev, "Release", lg); err != nil {
			return nil, err
		}
		ev.Raw = lg
		events = append(events, ev)
	}
	return events, nil
}
