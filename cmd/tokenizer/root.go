package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ampnet/tokenizer-middleware/pkg/config"
	"github.com/ampnet/tokenizer-middleware/pkg/ethereum"
	"github.com/ampnet/tokenizer-middleware/pkg/platform"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tokenizer",
		Short:        "Command line client for the tokenization platform",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to configuration file")

	root.AddCommand(
		newDeployCmd(),
		newCreateCmd(),
		newInvestCmd(),
		newCancelInvestmentCmd(),
		newClaimCmd(),
		newFinalizeCmd(),
		newCancelCampaignCmd(),
		newPayoutCmd(),
		newWalletCmd(),
		newListCmd(),
		newStateCmd(),
		newHistoryCmd(),
	)
	return root
}

// runtime bundles everything a command needs after setup.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *ethereum.Client
	service *platform.Service
}

func (rt *runtime) close() {
	rt.client.Close()
	_ = rt.logger.Sync()
}

func setup() (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	client, err := ethereum.NewClient(&cfg.Chain, logger)
	if err != nil {
		return nil, fmt.Errorf("connect chain: %w", err)
	}
	return &runtime{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		service: platform.NewService(cfg, client, logger),
	}, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
