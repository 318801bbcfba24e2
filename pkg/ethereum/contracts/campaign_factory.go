package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var cfManagerFactoryABI = mustParseABI("CfManagerSoftcapFactory", `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[]},
	{"type":"function","name":"create","stateMutability":"nonpayable","inputs":[
		{"name":"owner","type":"address"},
		{"name":"asset","type":"address"},
		{"name":"initialPricePerToken","type":"uint256"},
		{"name":"softCap","type":"uint256"},
		{"name":"minInvestment","type":"uint256"},
		{"name":"maxInvestment","type":"uint256"},
		{"name":"whitelistRequired","type":"bool"},
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
	{"type":"event","name":"CfManagerSoftcapCreated","anonymous":false,"inputs":[
		{"name":"creator","type":"address","indexed":true},
		{"name":"cfManager","type":"address","indexed":false},
		{"name":"id","type":"uint256","indexed":false},
		{"name":"asset","type":"address","indexed":false}]}
]`)

// CfManagerSoftcapCreated is emitted by the campaign factory once per created instance.
type CfManagerSoftcapCreated struct {
	Creator   common.Address
	CfManager common.Address
	Id        *big.Int
	Asset     common.Address
	Raw       types.Log
}

// ParseCfManagerSoftcapCreated decodes a raw log as a CfManagerSoftcapCreated event.
func ParseCfManagerSoftcapCreated(lg types.Log) (*CfManagerSoftcapCreated, error) {
	ev := new(CfManagerSoftcapCreated)
	if err := unpackLog(cfManagerFactoryABI, ev, "CfManagerSoftcapCreated", lg); err != nil {
		return nil, err
	}
	ev.Raw = lg
	return ev, nil
}

// CfManagerFactory binds the predeployed crowdfunding campaign factory registry.
type CfManagerFactory struct {
	contract
}

func NewCfManagerFactory(address common.Address, backend bind.ContractBackend) *CfManagerFactory {
	return &CfManagerFactory{newContract(address, cfManagerFactoryABI, backend)}
}

// DeployCfManagerFactory deploys the campaign factory contract.
func DeployCfManagerFactory(opts *bind.TransactOpts, backend bind.ContractBackend, bytecode []byte) (common.Address, *types.Transaction, error) {
	return deployContract(opts, backend, cfManagerFactoryABI, bytecode)
}

// Create submits a creation transaction for a new campaign instance.
func (f *CfManagerFactory) Create(opts *bind.TransactOpts, owner, asset common.Address, initialPricePerToken, softCap, minInvestment, maxInvestment *big.Int, whitelistRequired bool, info string) (*types.Transaction, error) {
	return f.bound.Transact(opts, "create", owner, asset, initialPricePerToken, softCap, minInvestment, maxInvestment, whitelistRequired, info)
}

// GetInstances returns the addresses of every campaign created through this factory.
func (f *CfManagerFactory) GetInstances(ctx context.Context) ([]common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "getInstances"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// GetInstancesForIssuer returns the campaigns created under the given issuer.
func (f *CfManagerFactory) GetInstancesForIssuer(ctx context.Context, issuer common.Address) ([]common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "getInstancesForIssuer", issuer); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// GetInstancesForAsset returns the campaigns selling tokens of the given asset.
func (f *CfManagerFactory) GetInstancesForAsset(ctx context.Context, asset common.Address) ([]common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "getInstancesForAsset", asset); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// Instance returns the address of the campaign with the given factory-scoped id.
func (f *CfManagerFactory) Instance(ctx context.Context, id *big.Int) (common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "instances", id); err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
