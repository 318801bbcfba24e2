package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var payoutManagerFactoryABI = mustParseABI("PayoutManagerFactory", `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[]},
	{"type":"function","name":"create","stateMutability":"nonpayable","inputs":[
		{"name":"owner","type":"address"},
		{"name":"asset","type":"address"},
		{"name":"info","type":"string"}],
		"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"getInstances","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"getInstancesForIssuer","stateMutability":"view",
		"inputs":[{"name":"issuer","type":"address"}],
		"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"getInstancesForAsset","stateMutability":"view",
		"inputs":[{"name":"asset","type":"address"}],
		"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"instances","stateMutability":"view",
		"inputs":[{"name":"","type":"uint256"}],
		"outputs":[{"name":"","type":"address"}]},
	{"type":"event","name":"PayoutManagerCreated","anonymous":false,"inputs":[
		{"name":"creator","type":"address","indexed":true},
		{"name":"payoutManager","type":"address","indexed":false},
		{"name":"id","type":"uint256","indexed":false},
		{"name":"asset","type":"address","indexed":false}]}
]`)

// PayoutManagerCreated is emitted by the payout manager factory once per created instance.
type PayoutManagerCreated struct {
	Creator       common.Address
	PayoutManager common.Address
	Id            *big.Int
	Asset         common.Address
	Raw           types.Log
}

// ParsePayoutManagerCreated decodes a raw log as a PayoutManagerCreated event.
func ParsePayoutManagerCreated(lg types.Log) (*PayoutManagerCreated, error) {
	ev := new(PayoutManagerCreated)
	if err := unpackLog(payoutManagerFactoryABI, ev, "PayoutManagerCreated", lg); err != nil {
		return nil, err
	}
	ev.Raw = lg
	return ev, nil
}

// PayoutManagerFactory binds the predeployed payout manager factory registry.
type PayoutManagerFactory struct {
	contract
}

func NewPayoutManagerFactory(address common.Address, backend bind.ContractBackend) *PayoutManagerFactory {
	return &PayoutManagerFactory{newContract(address, payoutManagerFactoryABI, backend)}
}

// DeployPayoutManagerFactory deploys the payout manager factory contract.
func DeployPayoutManagerFactory(opts *bind.TransactOpts, backend bind.ContractBackend, bytecode []byte) (common.Address, *types.Transaction, error) {
	return deployContract(opts, backend, payoutManagerFactoryABI, bytecode)
}

// Create submits a creation transaction for a new payout manager instance.
func (f *PayoutManagerFactory) Create(opts *bind.TransactOpts, owner, asset common.Address, info string) (*types.Transaction, error) {
	return f.bound.Transact(opts, "create", owner, asset, info)
}

// GetInstances returns the addresses of every payout manager created through this factory.
func (f *PayoutManagerFactory) GetInstances(ctx context.Context) ([]common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "getInstances"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// GetInstancesForIssuer returns the payout managers created under the given issuer.
func (f *PayoutManagerFactory) GetInstancesForIssuer(ctx context.Context, issuer common.Address) ([]common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "getInstancesForIssuer", issuer); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// GetInstancesForAsset returns the payout managers distributing revenue for the given asset.
func (f *PayoutManagerFactory) GetInstancesForAsset(ctx context.Context, asset common.Address) ([]common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "getInstancesForAsset", asset); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// Instance returns the address of the payout manager with the given factory-scoped id.
func (f *PayoutManagerFactory) Instance(ctx context.Context, id *big.Int) (common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "instances", id); err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
