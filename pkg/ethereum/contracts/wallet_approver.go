package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var walletApproverABI = mustParseABI("WalletApproverService", `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[
		{"name":"masterWalletApprover","type":"address"},
		{"name":"approvers","type":"address[]"},
		{"name":"rewardPerApprove","type":"uint256"}]},
	{"type":"function","name":"approveWallet","stateMutability":"nonpayable","inputs":[
		{"name":"issuer","type":"address"},
		{"name":"wallet","type":"address"}],"outputs":[]},
	{"type":"function","name":"suspendWallet","stateMutability":"nonpayable","inputs":[
		{"name":"issuer","type":"address"},
		{"name":"wallet","type":"address"}],"outputs":[]}
]`)

// WalletApprover binds the shared wallet approver service that whitelists
// KYC-approved wallets on issuer instances.
type WalletApprover struct {
	contract
}

func NewWalletApprover(address common.Address, backend bind.ContractBackend) *WalletApprover {
	return &WalletApprover{newContract(address, walletApproverABI, backend)}
}

// DeployWalletApprover deploys the wallet approver service.
func DeployWalletApprover(opts *bind.TransactOpts, backend bind.ContractBackend, bytecode []byte, masterWalletApprover common.Address, approvers []common.Address, rewardPerApprove *big.Int) (common.Address, *types.Transaction, error) {
	return deployContract(opts, backend, walletApproverABI, bytecode, masterWalletApprover, approvers, rewardPerApprove)
}

// ApproveWallet whitelists the wallet on the given issuer.
func (w *WalletApprover) ApproveWallet(opts *bind.TransactOpts, issuer, wallet common.Address) (*types.Transaction, error) {
	return w.bound.Transact(opts, "approveWallet", issuer, wallet)
}

// SuspendWallet removes the wallet from the given issuer's whitelist.
func (w *WalletApprover) SuspendWallet(opts *bind.TransactOpts, issuer, wallet common.Address) (*types.Transaction, error) {
	return w.bound.Transact(opts, "suspendWallet", issuer, wallet)
}
