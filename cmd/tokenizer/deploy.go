package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

func newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the platform base contracts",
	}
	cmd.AddCommand(
		newDeployFactoriesCmd(),
		newDeployStablecoinCmd(),
		newDeployWalletApproverCmd(),
		newDeployDeployerCmd(),
	)
	return cmd
}

func newDeployFactoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "factories",
		Short: "Deploy the issuer, asset, campaign and payout manager factories",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			deployed, err := rt.service.DeployFactories(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(map[string]string{
				"issuerFactory":        deployed.IssuerFactory.Hex(),
				"assetFactory":         deployed.AssetFactory.Hex(),
				"cfManagerFactory":     deployed.CfManagerFactory.Hex(),
				"payoutManagerFactory": deployed.PayoutManagerFactory.Hex(),
			})
		},
	}
}

func newDeployStablecoinCmd() *cobra.Command {
	var supply string
	cmd := &cobra.Command{
		Use:   "stablecoin",
		Short: "Deploy a test stablecoin minted to the signer",
		RunE: func(cmd *cobra.Command, args []string) error {
			supplyDec, err := parseAmount(supply, "supply")
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			addr, err := rt.service.DeployStablecoin(cmd.Context(), supplyDec)
			if err != nil {
				return err
			}
			return printJSON(map[string]string{"stablecoin": addr.Hex()})
		},
	}
	cmd.Flags().StringVar(&supply, "supply", "1000000", "initial supply")
	return cmd
}

func newDeployWalletApproverCmd() *cobra.Command {
	var (
		master    string
		approvers []string
		reward    string
	)
	cmd := &cobra.Command{
		Use:   "wallet-approver",
		Short: "Deploy the wallet approver service",
		RunE: func(cmd *cobra.Command, args []string) error {
			rewardDec, err := parseAmount(reward, "reward")
			if err != nil {
				return err
			}
			var masterAddr common.Address
			if master != "" {
				if masterAddr, err = parseAddress(master, "master"); err != nil {
					return err
				}
			}
			approverAddrs := make([]common.Address, len(approvers))
			for i, raw := range approvers {
				if approverAddrs[i], err = parseAddress(raw, "approver"); err != nil {
					return err
				}
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			addr, err := rt.service.DeployWalletApprover(cmd.Context(), masterAddr, approverAddrs, rewardDec)
			if err != nil {
				return err
			}
			return printJSON(map[string]string{"walletApprover": addr.Hex()})
		},
	}
	cmd.Flags().StringVar(&master, "master", "", "master approver address (defaults to the signer)")
	cmd.Flags().StringSliceVar(&approvers, "approver", nil, "approver address (repeatable)")
	cmd.Flags().StringVar(&reward, "reward", "0", "reward per approval")
	return cmd
}

func newDeployDeployerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deployer",
		Short: "Deploy the combined-creation deployer service",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			addr, err := rt.service.DeployDeployerService(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(map[string]string{"deployerService": addr.Hex()})
		},
	}
}
