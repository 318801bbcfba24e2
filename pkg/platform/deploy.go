package platform

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ampnet/tokenizer-middleware/internal/metrics"
	apperrors "github.com/ampnet/tokenizer-middleware/pkg/app/errors"
	"github.com/ampnet/tokenizer-middleware/pkg/ethereum/contracts"
)

// DeployedFactories holds the addresses of a freshly bootstrapped factory
// set.
type DeployedFactories struct {
	IssuerFactory        common.Address
	AssetFactory         common.Address
	CfManagerFactory     common.Address
	PayoutManagerFactory common.Address
}

// DeployFactories deploys the four instance factories and returns their
// addresses. Compiled bytecode is read from the configured artifacts
// directory, one hex file per contract.
func (s *Service) DeployFactories(ctx context.Context) (*DeployedFactories, error) {
	out := &DeployedFactories{}
	for _, d := range []struct {
		artifact string
		target   *common.Address
		deploy   func(opts *bind.TransactOpts, bytecode []byte) (common.Address, *types.Transaction, error)
	}{
		{"IssuerFactory", &out.IssuerFactory, func(opts *bind.TransactOpts, bytecode []byte) (common.Address, *types.Transaction, error) {
			return contracts.DeployIssuerFactory(opts, s.client.Backend(), bytecode)
		}},
		{"AssetFactory", &out.AssetFactory, func(opts *bind.TransactOpts, bytecode []byte) (common.Address, *types.Transaction, error) {
			return contracts.DeployAssetFactory(opts, s.client.Backend(), bytecode)
		}},
		{"CfManagerSoftcapFactory", &out.CfManagerFactory, func(opts *bind.TransactOpts, bytecode []byte) (common.Address, *types.Transaction, error) {
			return contracts.DeployCfManagerFactory(opts, s.client.Backend(), bytecode)
		}},
		{"PayoutManagerFactory", &out.PayoutManagerFactory, func(opts *bind.TransactOpts, bytecode []byte) (common.Address, *types.Transaction, error) {
			return contracts.DeployPayoutManagerFactory(opts, s.client.Backend(), bytecode)
		}},
	} {
		addr, err := s.deployContract(ctx, d.artifact, d.deploy)
		if err != nil {
			return nil, err
		}
		*d.target = addr
	}
	return out, nil
}

// DeployStablecoin deploys a test stablecoin minted to the signer. Meant for
// local and test networks; production issuers configure a real stablecoin
// address instead.
func (s *Service) DeployStablecoin(ctx context.Context, supply decimal.Decimal) (common.Address, error) {
	wei, err := ToWei(supply)
	if err != nil {
		return common.Address{}, err
	}
	return s.deployContract(ctx, "USDC", func(opts *bind.TransactOpts, bytecode []byte) (common.Address, *types.Transaction, error) {
		return contracts.DeployStablecoin(opts, s.client.Backend(), bytecode, wei)
	})
}

// DeployWalletApprover deploys the wallet approver with its initial approver
// set.
func (s *Service) DeployWalletApprover(ctx context.Context, master common.Address, approvers []common.Address, rewardPerApprove decimal.Decimal) (common.Address, error) {
	reward, err := ToWei(rewardPerApprove)
	if err != nil {
		return common.Address{}, err
	}
	if master == (common.Address{}) {
		master = s.client.Address()
	}
	return s.deployContract(ctx, "WalletApproverService", func(opts *bind.TransactOpts, bytecode []byte) (common.Address, *types.Transaction, error) {
		return contracts.DeployWalletApprover(opts, s.client.Backend(), bytecode, master, approvers, reward)
	})
}

// DeployDeployerService deploys the combined-creation helper and starts
// using it for combined deployments.
func (s *Service) DeployDeployerService(ctx context.Context) (common.Address, error) {
	addr, err := s.deployContract(ctx, "DeployerService", func(opts *bind.TransactOpts, bytecode []byte) (common.Address, *types.Transaction, error) {
		return contracts.DeployDeployerService(opts, s.client.Backend(), bytecode)
	})
	if err != nil {
		return common.Address{}, err
	}
	s.deployer = contracts.NewDeployerService(addr, s.client.Backend())
	return addr, nil
}

func (s *Service) deployContract(ctx context.Context, artifact string, deploy func(opts *bind.TransactOpts, bytecode []byte) (common.Address, *types.Transaction, error)) (common.Address, error) {
	bytecode, err := s.loadBytecode(artifact)
	if err != nil {
		return common.Address{}, err
	}
	opts, err := s.client.Transactor(ctx)
	if err != nil {
		return common.Address{}, apperrors.GeneralError(err)
	}
	addr, tx, err := deploy(opts, bytecode)
	if err != nil {
		metrics.TransactionsSent.WithLabelValues("deploy", "error").Inc()
		return common.Address{}, apperrors.GeneralError(err)
	}
	receipt, err := s.client.WaitMined(ctx, tx)
	if err != nil {
		metrics.TransactionsSent.WithLabelValues("deploy", "error").Inc()
		return common.Address{}, apperrors.GeneralError(err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		metrics.TransactionsSent.WithLabelValues("deploy", "reverted").Inc()
		return common.Address{}, apperrors.GeneralError(fmt.Errorf("deployment of %s reverted: %s", artifact, tx.Hash().Hex()))
	}
	metrics.TransactionsSent.WithLabelValues("deploy", "success").Inc()
	s.logger.Info("contract deployed",
		zap.String("artifact", artifact),
		zap.String("address", addr.Hex()),
		zap.String("tx", tx.Hash().Hex()))
	return addr, nil
}

// loadBytecode reads a compiled contract's deployment bytecode from the
// artifacts directory. Files hold hex, with or without a 0x prefix.
func (s *Service) loadBytecode(artifact string) ([]byte, error) {
	path := filepath.Join(s.cfg.Chain.ArtifactsDir, artifact+".bin")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("reading bytecode artifact %s: %w", path, err))
	}
	text := strings.TrimPrefix(strings.TrimSpace(string(raw)), "0x")
	bytecode, err := hex.DecodeString(text)
	if err != nil {
		return nil, apperrors.GeneralError(fmt.Errorf("decoding bytecode artifact %s: %w", path, err))
	}
	return bytecode, nil
}
