package main

import (
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"
)

func newInvestCmd() *cobra.Command {
	var (
		campaign string
		amount   string
	)
	cmd := &cobra.Command{
		Use:   "invest",
		Short: "Invest stablecoin into a campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			campaignAddr, err := parseAddress(campaign, "campaign")
			if err != nil {
				return err
			}
			amountDec, err := parseAmount(amount, "amount")
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			receipt, err := rt.service.Invest(cmd.Context(), campaignAddr, amountDec)
			if err != nil {
				return err
			}
			return printReceipt(receipt)
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "campaign instance address")
	cmd.Flags().StringVar(&amount, "amount", "", "stablecoin amount to invest")
	_ = cmd.MarkFlagRequired("campaign")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newCancelInvestmentCmd() *cobra.Command {
	var campaign string
	cmd := &cobra.Command{
		Use:   "cancel-investment",
		Short: "Withdraw a pending investment from a campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			campaignAddr, err := parseAddress(campaign, "campaign")
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			receipt, err := rt.service.CancelInvestment(cmd.Context(), campaignAddr)
			if err != nil {
				return err
			}
			return printReceipt(receipt)
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "campaign instance address")
	_ = cmd.MarkFlagRequired("campaign")
	return cmd
}

func newClaimCmd() *cobra.Command {
	var (
		campaign string
		investor string
	)
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Claim tokens from a finalized campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			campaignAddr, err := parseAddress(campaign, "campaign")
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			investorAddr := rt.client.Address()
			if investor != "" {
				if investorAddr, err = parseAddress(investor, "investor"); err != nil {
					return err
				}
			}
			receipt, err := rt.service.ClaimTokens(cmd.Context(), campaignAddr, investorAddr)
			if err != nil {
				return err
			}
			return printReceipt(receipt)
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "campaign instance address")
	cmd.Flags().StringVar(&investor, "investor", "", "investor wallet (defaults to the signer)")
	_ = cmd.MarkFlagRequired("campaign")
	return cmd
}

func newFinalizeCmd() *cobra.Command {
	var campaign string
	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Finalize a campaign that reached its soft cap",
		RunE: func(cmd *cobra.Command, args []string) error {
			campaignAddr, err := parseAddress(campaign, "campaign")
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			receipt, err := rt.service.FinalizeCampaign(cmd.Context(), campaignAddr)
			if err != nil {
				return err
			}
			return printReceipt(receipt)
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "campaign instance address")
	_ = cmd.MarkFlagRequired("campaign")
	return cmd
}

func newCancelCampaignCmd() *cobra.Command {
	var campaign string
	cmd := &cobra.Command{
		Use:   "cancel-campaign",
		Short: "Abort a campaign before finalization",
		RunE: func(cmd *cobra.Command, args []string) error {
			campaignAddr, err := parseAddress(campaign, "campaign")
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			receipt, err := rt.service.CancelCampaign(cmd.Context(), campaignAddr)
			if err != nil {
				return err
			}
			return printReceipt(receipt)
		},
	}
	cmd.Flags().StringVar(&campaign, "campaign", "", "campaign instance address")
	_ = cmd.MarkFlagRequired("campaign")
	return cmd
}

func newPayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payout",
		Short: "Manage revenue payouts",
	}

	var (
		manager     string
		amount      string
		description string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Fund a new revenue payout round",
		RunE: func(cmd *cobra.Command, args []string) error {
			managerAddr, err := parseAddress(manager, "manager")
			if err != nil {
				return err
			}
			amountDec, err := parseAmount(amount, "amount")
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			receipt, err := rt.service.CreatePayout(cmd.Context(), managerAddr, description, amountDec)
			if err != nil {
				return err
			}
			return printReceipt(receipt)
		},
	}
	create.Flags().StringVar(&manager, "manager", "", "payout manager instance address")
	create.Flags().StringVar(&amount, "amount", "", "stablecoin amount to distribute")
	create.Flags().StringVar(&description, "description", "", "payout description")
	_ = create.MarkFlagRequired("manager")
	_ = create.MarkFlagRequired("amount")

	var (
		releaseManager  string
		releaseInvestor string
		payoutID        int64
	)
	release := &cobra.Command{
		Use:   "release",
		Short: "Release one investor's share of a payout round",
		RunE: func(cmd *cobra.Command, args []string) error {
			managerAddr, err := parseAddress(releaseManager, "manager")
			if err != nil {
				return err
			}
			investorAddr, err := parseAddress(releaseInvestor, "investor")
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			receipt, err := rt.service.ReleaseRevenue(cmd.Context(), managerAddr, investorAddr, payoutID)
			if err != nil {
				return err
			}
			return printReceipt(receipt)
		},
	}
	release.Flags().StringVar(&releaseManager, "manager", "", "payout manager instance address")
	release.Flags().StringVar(&releaseInvestor, "investor", "", "investor wallet")
	release.Flags().Int64Var(&payoutID, "id", 0, "payout round id")
	_ = release.MarkFlagRequired("manager")
	_ = release.MarkFlagRequired("investor")

	cmd.AddCommand(create, release)
	return cmd
}

func newWalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage issuer wallet whitelists",
	}

	var (
		issuer string
		wallet string
	)
	runWith := func(action func(rt *runtime, cmd *cobra.Command) (*types.Receipt, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			receipt, err := action(rt, cmd)
			if err != nil {
				return err
			}
			return printReceipt(receipt)
		}
	}

	approve := &cobra.Command{
		Use:   "approve",
		Short: "Whitelist a wallet on an issuer",
		RunE: runWith(func(rt *runtime, cmd *cobra.Command) (*types.Receipt, error) {
			issuerAddr, err := parseAddress(issuer, "issuer")
			if err != nil {
				return nil, err
			}
			walletAddr, err := parseAddress(wallet, "wallet")
			if err != nil {
				return nil, err
			}
			return rt.service.ApproveWallet(cmd.Context(), issuerAddr, walletAddr)
		}),
	}
	suspend := &cobra.Command{
		Use:   "suspend",
		Short: "Remove a wallet from an issuer's whitelist",
		RunE: runWith(func(rt *runtime, cmd *cobra.Command) (*types.Receipt, error) {
			issuerAddr, err := parseAddress(issuer, "issuer")
			if err != nil {
				return nil, err
			}
			walletAddr, err := parseAddress(wallet, "wallet")
			if err != nil {
				return nil, err
			}
			return rt.service.SuspendWallet(cmd.Context(), issuerAddr, walletAddr)
		}),
	}
	for _, c := range []*cobra.Command{approve, suspend} {
		c.Flags().StringVar(&issuer, "issuer", "", "issuer instance address")
		c.Flags().StringVar(&wallet, "wallet", "", "wallet address")
		_ = c.MarkFlagRequired("issuer")
		_ = c.MarkFlagRequired("wallet")
	}

	cmd.AddCommand(approve, suspend)
	return cmd
}

func printReceipt(receipt *types.Receipt) error {
	return printJSON(map[string]interface{}{
		"txHash":      receipt.TxHash.Hex(),
		"blockNumber": receipt.BlockNumber.Uint64(),
		"success":     receipt.Status == types.ReceiptStatusSuccessful,
	})
}
