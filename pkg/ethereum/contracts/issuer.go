package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var issuerABI = mustParseABI("Issuer", `[
	{"type":"function","name":"getState","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"tuple","components":[
			{"name":"id","type":"uint256"},
			{"name":"owner","type":"address"},
			{"name":"stablecoin","type":"address"},
			{"name":"walletApprover","type":"address"},
			{"name":"info","type":"string"}]}]},
	{"type":"function","name":"approveWallet","stateMutability":"nonpayable",
		"inputs":[{"name":"wallet","type":"address"}],"outputs":[]},
	{"type":"function","name":"suspendWallet","stateMutability":"nonpayable",
		"inputs":[{"name":"wallet","type":"address"}],"outputs":[]},
	{"type":"function","name":"approveCampaign","stateMutability":"nonpayable",
		"inputs":[{"name":"campaign","type":"address"}],"outputs":[]},
	{"type":"function","name":"isWalletApproved","stateMutability":"view",
		"inputs":[{"name":"wallet","type":"address"}],
		"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"getWalletRecords","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"tuple[]","components":[
			{"name":"wallet","type":"address"},
			{"name":"whitelisted","type":"bool"}]}]},
	{"type":"function","name":"setInfo","stateMutability":"nonpayable",
		"inputs":[{"name":"info","type":"string"}],"outputs":[]},
	{"type":"function","name":"getInfoHistory","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"tuple[]","components":[
			{"name":"info","type":"string"},
			{"name":"timestamp","type":"uint256"}]}]}
]`)

// IssuerState mirrors the issuer contract getState() response.
type IssuerState struct {
	Id             *big.Int
	Owner          common.Address
	Stablecoin     common.Address
	WalletApprover common.Address
	Info           string
}

// WalletRecord is one entry of the issuer whitelist.
type WalletRecord struct {
	Wallet      common.Address
	Whitelisted bool
}

// InfoEntry is one entry of a contract's info edit history.
type InfoEntry struct {
	Info      string
	Timestamp *big.Int
}

// Issuer binds one deployed issuer instance.
type Issuer struct {
	contract
}

func NewIssuer(address common.Address, backend bind.ContractBackend) *Issuer {
	return &Issuer{newContract(address, issuerABI, backend)}
}

// GetState returns the issuer state snapshot.
func (i *Issuer) GetState(ctx context.Context) (*IssuerState, error) {
	var out []interface{}
	if err := i.call(ctx, &out, "getState"); err != nil {
		return nil, err
	}
	state := abi.ConvertType(out[0], new(IssuerState)).(*IssuerState)
	return state, nil
}

// ApproveWallet whitelists a wallet for investments under this issuer.
func (i *Issuer) ApproveWallet(opts *bind.TransactOpts, wallet common.Address) (*types.Transaction, error) {
	return i.bound.Transact(opts, "approveWallet", wallet)
}

// SuspendWallet removes a wallet from the issuer whitelist.
func (i *Issuer) SuspendWallet(opts *bind.TransactOpts, wallet common.Address) (*types.Transaction, error) {
	return i.bound.Transact(opts, "suspendWallet", wallet)
}

// ApproveCampaign marks a campaign as approved to sell under this issuer.
func (i *Issuer) ApproveCampaign(opts *bind.TransactOpts, campaign common.Address) (*types.Transaction, error) {
	return i.bound.Transact(opts, "approveCampaign", campaign)
}

// IsWalletApproved reports whether the wallet is on the issuer whitelist.
func (i *Issuer) IsWalletApproved(ctx context.Context, wallet common.Address) (bool, error) {
	var out []interface{}
	if err := i.call(ctx, &out, "isWalletApproved", wallet); err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// GetWalletRecords returns the full issuer whitelist.
func (i *Issuer) GetWalletRecords(ctx context.Context) ([]WalletRecord, error) {
	var out []interface{}
	if err := i.call(ctx, &out, "getWalletRecords"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]WalletRecord)).(*[]WalletRecord), nil
}

// SetInfo updates the issuer info hash.
func (i *Issuer) SetInfo(opts *bind.TransactOpts, info string) (*types.Transaction, error) {
	return i.bound.Transact(opts, "setInfo", info)
}

// GetInfoHistory returns every info hash ever set, oldest first.
func (i *Issuer) GetInfoHistory(ctx context.Context) ([]InfoEntry, error) {
	var out []interface{}
	if err := i.call(ctx, &out, "getInfoHistory"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]InfoEntry)).(*[]InfoEntry), nil
}
