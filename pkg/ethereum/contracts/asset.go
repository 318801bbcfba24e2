package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var assetABI = mustParseABI("Asset", `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[
		{"name":"recipient","type":"address"},
		{"name":"amount","type":"uint256"}],
		"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[
		{"name":"spender","type":"address"},
		{"name":"amount","type":"uint256"}],
		"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view",
		"inputs":[{"name":"account","type":"address"}],
		"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getState","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"tuple","components":[
			{"name":"id","type":"uint256"},
			{"name":"owner","type":"address"},
			{"name":"mirroredToken","type":"address"},
			{"name":"initialTokenSupply","type":"uint256"},
			{"name":"whitelistRequiredForTransfer","type":"bool"},
			{"name":"issuer","type":"address"},
			{"name":"info","type":"string"},
			{"name":"name","type":"string"},
			{"name":"symbol","type":"string"}]}]},
	{"type":"function","name":"setInfo","stateMutability":"nonpayable",
		"inputs":[{"name":"info","type":"string"}],"outputs":[]},
	{"type":"function","name":"getInfoHistory","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"tuple[]","components":[
			{"name":"info","type":"string"},
			{"name":"timestamp","type":"uint256"}]}]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[
		{"name":"from","type":"address","indexed":true},
		{"name":"to","type":"address","indexed":true},
		{"name":"value","type":"uint256","indexed":false}]}
]`)

// AssetState mirrors the asset contract getState() response.
type AssetState struct {
	Id                           *big.Int
	Owner                        common.Address
	MirroredToken                common.Address
	InitialTokenSupply           *big.Int
	WhitelistRequiredForTransfer bool
	Issuer                       common.Address
	Info                         string
	Name                         string
	Symbol                       string
}

// Transfer is the standard ERC-20 transfer event emitted by asset tokens.
type Transfer struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Raw   types.Log
}

// Asset binds one deployed asset token instance.
type Asset struct {
	contract
}

func NewAsset(address common.Address, backend bind.ContractBackend) *Asset {
	return &Asset{newContract(address, assetABI, backend)}
}

// Transfer moves asset tokens to the recipient.
func (a *Asset) Transfer(opts *bind.TransactOpts, recipient common.Address, amount *big.Int) (*types.Transaction, error) {
	return a.bound.Transact(opts, "transfer", recipient, amount)
}

// Approve allows the spender to move the given amount of asset tokens.
func (a *Asset) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	return a.bound.Transact(opts, "approve", spender, amount)
}

// BalanceOf returns the token balance of the account.
func (a *Asset) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := a.call(ctx, &out, "balanceOf", account); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// GetState returns the asset state snapshot.
func (a *Asset) GetState(ctx context.Context) (*AssetState, error) {
	var out []interface{}
	if err := a.call(ctx, &out, "getState"); err != nil {
		return nil, err
	}
	return abi.ConvertType(out[0], new(AssetState)).(*AssetState), nil
}

// SetInfo updates the asset info hash.
func (a *Asset) SetInfo(opts *bind.TransactOpts, info string) (*types.Transaction, error) {
	return a.bound.Transact(opts, "setInfo", info)
}

// GetInfoHistory returns every info hash ever set, oldest first.
func (a *Asset) GetInfoHistory(ctx context.Context) ([]InfoEntry, error) {
	var out []interface{}
	if err := a.call(ctx, &out, "getInfoHistory"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]InfoEntry)).(*[]InfoEntry), nil
}

// FilterTransfer returns historical Transfer events, optionally constrained
// to a set of senders and recipients. A nil slice leaves that side open.
func (a *Asset) FilterTransfer(ctx context.Context, from, to []common.Address) ([]Transfer, error) {
	logs, err := a.filterLogs(ctx, "Transfer", addressTopics(from), addressTopics(to))
	if err != nil {
		return nil, err
	}
	events := make([]Transfer, 0, len(logs))
	for _, lg := range logs {
		var ev Transfer
		if err := unpackLog(assetABI, &ev, "Transfer", lg); err != nil {
			return nil, err
		}
		ev.Raw = lg
		events = append(events, ev)
	}
	return events, nil
}

func addressTopics(addresses []common.Address) []interface{} {
	if len(addresses) == 0 {
		return nil
	}
	out := make([]interface{}, len(addresses))
	for i, a := range addresses {
		out[i] = a
	}
	return out
}
