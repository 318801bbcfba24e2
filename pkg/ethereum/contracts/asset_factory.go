package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var assetFactoryABI = mustParseABI("AssetFactory", `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[]},
	{"type":"function","name":"create","stateMutability":"nonpayable","inputs":[
		{"name":"owner","type":"address"},
		{"name":"issuer","type":"address"},
		{"name":"initialTokenSupply","type":"uint256"},
		{"name":"whitelistRequiredForTransfer","type":"bool"},
		{"name":"name","type":"string"},
		{"name":"symbol","type":"string"},
		{"name":"info","type":"string"}],
		"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"getInstances","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"getInstancesForIssuer","stateMutability":"view",
		"inputs":[{"name":"issuer","type":"address"}],
		"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"instances","stateMutability":"view",
		"inputs":[{"name":"","type":"uint256"}],
		"outputs":[{"name":"","type":"address"}]},
	{"type":"event","name":"AssetCreated","anonymous":false,"inputs":[
		{"name":"creator","type":"address","indexed":true},
		{"name":"asset","type":"address","indexed":false},
		{"name":"id","type":"uint256","indexed":false}]}
]`)

// AssetCreated is emitted by the asset factory once per created instance.
type AssetCreated struct {
	Creator common.Address
	Asset   common.Address
	Id      *big.Int
	Raw     types.Log
}

// ParseAssetCreated decodes a raw log as an AssetCreated event.
func ParseAssetCreated(lg types.Log) (*AssetCreated, error) {
	ev := new(AssetCreated)
	if err := unpackLog(assetFactoryABI, ev, "AssetCreated", lg); err != nil {
		return nil, err
	}
	ev.Raw = lg
	return ev, nil
}

// AssetFactory binds the predeployed asset factory registry.
type AssetFactory struct {
	contract
}

func NewAssetFactory(address common.Address, backend bind.ContractBackend) *AssetFactory {
	return &AssetFactory{newContract(address, assetFactoryABI, backend)}
}

// DeployAssetFactory deploys the asset factory contract.
func DeployAssetFactory(opts *bind.TransactOpts, backend bind.ContractBackend, bytecode []byte) (common.Address, *types.Transaction, error) {
	return deployContract(opts, backend, assetFactoryABI, bytecode)
}

// Create submits a creation transaction for a new asset instance.
func (f *AssetFactory) Create(opts *bind.TransactOpts, owner, issuer common.Address, initialTokenSupply *big.Int, whitelistRequiredForTransfer bool, name, symbol, info string) (*types.Transaction, error) {
	return f.bound.Transact(opts, "create", owner, issuer, initialTokenSupply, whitelistRequiredForTransfer, name, symbol, info)
}

// GetInstances returns the addresses of every asset created through this factory.
func (f *AssetFactory) GetInstances(ctx context.Context) ([]common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "getInstances"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// GetInstancesForIssuer returns the assets created under the given issuer.
func (f *AssetFactory) GetInstancesForIssuer(ctx context.Context, issuer common.Address) ([]common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "getInstancesForIssuer", issuer); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// Instance returns the address of the asset with the given factory-scoped id.
func (f *AssetFactory) Instance(ctx context.Context, id *big.Int) (common.Address, error) {
	var out []interface{}
	if err := f.call(ctx, &out, "instances", id); err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
