package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var stablecoinABI = mustParseABI("Stablecoin", `[
	{"type":"constructor","stateMutability":"nonpayable",
		"inputs":[{"name":"supply","type":"uint256"}]},
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
		"outputs":[{"name":"","type":"uint256"}]}
]`)

// Stablecoin binds the ERC-20 payment currency accepted by an issuer.
type Stablecoin struct {
	contract
}

func NewStablecoin(address common.Address, backend bind.ContractBackend) *Stablecoin {
	return &Stablecoin{newContract(address, stablecoinABI, backend)}
}

// DeployStablecoin deploys the mock stablecoin with the given initial supply.
func DeployStablecoin(opts *bind.TransactOpts, backend bind.ContractBackend, bytecode []byte, supply *big.Int) (common.Address, *types.Transaction, error) {
	return deployContract(opts, backend, stablecoinABI, bytecode, supply)
}

// Transfer moves stablecoin to the recipient.
func (s *Stablecoin) Transfer(opts *bind.TransactOpts, recipient common.Address, amount *big.Int) (*types.Transaction, error) {
	return s.bound.Transact(opts, "transfer", recipient, amount)
}

// Approve allows the spender to move the given amount of stablecoin.
func (s *Stablecoin) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	return s.bound.Transact(opts, "approve", spender, amount)
}

// BalanceOf returns the stablecoin balance of the account.
func (s *Stablecoin) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := s.call(ctx, &out, "balanceOf", account); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
