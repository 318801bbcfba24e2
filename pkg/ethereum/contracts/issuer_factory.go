package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var issuerFactoryABI = mustParseABI("IssuerFactory", `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[]},
	{"type":"function","name":"create","stateMutability":"nonpayable","inputs":[
		{"name":"owner","type":"address"},
		{"name":"stablecoin","type":"address"},
		{"name":"walletApprover","type":"address"},
		{"name":"info","type":"string"}],
		"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"getInstances","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"instances","stateMutability":"view",
		"inputs":[{"name":"","type":"uint256"}],
		"outputs":[{"name":"","type":"address"}]},
	{"type":"event","name":"IssuerCreated","anonymous":false,"inputs":[
		{"name":"creator","type":"address","indexed":true},
		{"name":"issuer","type":"address","indexed":false},
		{"name":"id","type":"uint256","indexed":false}]}
]`)

// IssuerCreated is emitted by the issuer factory once per created instance.
type IssuerCreated struct {
	Creator common.Address
	Issuer  common.Address
	Id      *big.Int
	Raw     types.Log
}

// ParseIssuerCreated decodes a raw log as an IssuerCreated event.
func ParseIssuerCreated(lg types.Log) (*IssuerCreated, error) {
	ev := new(IssuerCreated)
	if err := unpackLog(issuerFactoryABI, ev, "IssuerCreated", lg); err != nil {
		return nil, err
	}
	ev.Raw = lg
	return ev, nil
}

// IssuerFactory binds the predeployed issuer factory registry.
type IssuerFactory struct {
	contract
}

func NewIssuerFactory(address common.Address, backend bind.ContractBackend) *IssuerFactory {
	return &IssuerFactory{newContract(address, issuerFactoryABI, backend)}
}

// DeployIssuerFactory deploys the issuer factory contract.
func DeployIssuerFactory(opts *bind.TransactOpts, backend bind.ContractBackend, bytecode []byte) (common.Address, *types.Transaction, error) {
	return deployContract(opts, backend, issuerFactoryABI, bytecode)
}

// Create submits a creation transaction for a new issuer instance.
func (f *IssuerFactory) Create(opts *bind.TransactOpts, owner, stablecoin, walletApprover common.Address, info string) (*types.Transaction, error) {
	return f.bound.Transact(opts, "create", owner, stablecoin, walletApprover, info)
}

// GetInstances returns the addresses of every issuer created through this factory.
func (f *IssuerFactory) GetInstances(ctx context.Context) ([]common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "getInstances"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// Instance returns the address of the issuer with the given factory-scoped id.
func (f *IssuerFactory) Instance(ctx context.Context, id *big.Int) (common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "instances", id); err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
