// Package contracts contains hand-maintained Go bindings for the tokenizer
// platform contracts. The bindings cover only the surface this middleware
// uses: factory create calls, instance registries, lifecycle transactions,
// state getters and historical event queries.
package contracts

import (
	"context"
	"fmt"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// contract is the shared plumbing embedded by every binding.
type contract struct {
	address common.Address
	abi     abi.ABI
	bound   *bind.BoundContract
	backend bind.ContractBackend
}

func newContract(address common.Address, parsedABI abi.ABI, backend bind.ContractBackend) contract {
	return contract{
		address: address,
		abi:     parsedABI,
		bound:   bind.NewBoundContract(address, parsedABI, backend, backend, backend),
		backend: backend,
	}
}

// Address returns the on-chain address this binding is attached to.
func (c *contract) Address() common.Address {
	return c.address
}

func (c *contract) call(ctx context.Context, result *[]interface{}, method string, args ...interface{}) error {
	return c.bound.Call(&bind.CallOpts{Context: ctx}, result, method, args...)
}

// filterLogs fetches historical logs for one event of this contract. Each
// entry of indexed constrains the corresponding indexed argument to a set of
// accepted values; a nil entry leaves that argument unconstrained.
func (c *contract) filterLogs(ctx context.Context, event string, indexed ...[]interface{}) ([]types.Log, error) {
	ev, ok := c.abi.Events[event]
	if !ok {
		return nil, fmt.Errorf("unknown event %q", event)
	}
	topics := [][]common.Hash{{ev.ID}}
	if len(indexed) > 0 {
		rest, err := abi.MakeTopics(indexed...)
		if err != nil {
			return nil, fmt.Errorf("failed to build topics for %s: %w", event, err)
		}
		topics = append(topics, rest...)
	}
	return c.backend.FilterLogs(ctx, ethereum.FilterQuery{
		Addresses: []common.Address{c.address},
		Topics:    topics,
	})
}

// unpackLog decodes a raw log into out, combining the non-indexed data
// payload with the indexed topic values.
func unpackLog(parsedABI abi.ABI, out interface{}, event string, lg types.Log) error {
	ev, ok := parsedABI.Events[event]
	if !ok {
		return fmt.Errorf("unknown event %q", event)
	}
	if len(lg.Topics) == 0 || lg.Topics[0] != ev.ID {
		return fmt.Errorf("log is not a %s event", event)
	}
	if len(lg.Data) > 0 {
		if err := parsedABI.UnpackIntoInterface(out, event, lg.Data); err != nil {
			return err
		}
	}
	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return abi.ParseTopics(out, indexed, lg.Topics[1:])
}

func mustParseABI(name, raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("contracts: invalid %s ABI: %v", name, err))
	}
	return parsed
}

func deployContract(opts *bind.TransactOpts, backend bind.ContractBackend, parsedABI abi.ABI, bytecode []byte, args ...interface{}) (common.Address, *types.Transaction, error) {
	address, tx, _, err := bind.DeployContract(opts, parsedABI, bytecode, backend, args...)
	if err != nil {
		return common.Address{}, nil, err
	}
	return address, tx, nil
}
