package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ampnet/tokenizer-middleware/pkg/platform"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create platform instances through the factories",
	}
	cmd.AddCommand(
		newCreateIssuerCmd(),
		newCreateAssetCmd(),
		newCreateCampaignCmd(),
		newCreatePayoutManagerCmd(),
	)
	return cmd
}

func newCreateIssuerCmd() *cobra.Command {
	var info string
	cmd := &cobra.Command{
		Use:   "issuer",
		Short: "Create a new issuer",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			record, err := rt.service.CreateIssuer(cmd.Context(), platform.CreateIssuerRequest{Info: info})
			if err != nil {
				return err
			}
			return printCreation(record)
		},
	}
	cmd.Flags().StringVar(&info, "info", "", "issuer info hash")
	return cmd
}

func newCreateAssetCmd() *cobra.Command {
	var (
		issuer    string
		supply    string
		name      string
		symbol    string
		info      string
		whitelist bool
	)
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Tokenize a new asset under an issuer",
		RunE: func(cmd *cobra.Command, args []string) error {
			issuerAddr, err := parseAddress(issuer, "issuer")
			if err != nil {
				return err
			}
			supplyDec, err := parseAmount(supply, "supply")
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			record, err := rt.service.CreateAsset(cmd.Context(), platform.CreateAssetRequest{
				Issuer:             issuerAddr,
				InitialTokenSupply: supplyDec,
				WhitelistRequired:  whitelist,
				Name:               name,
				Symbol:             symbol,
				Info:               info,
			})
			if err != nil {
				return err
			}
			return printCreation(record)
		},
	}
	cmd.Flags().StringVar(&issuer, "issuer", "", "issuer instance address")
	cmd.Flags().StringVar(&supply, "supply", "", "initial token supply")
	cmd.Flags().StringVar(&name, "name", "", "token name")
	cmd.Flags().StringVar(&symbol, "symbol", "", "token symbol")
	cmd.Flags().StringVar(&info, "info", "", "asset info hash")
	cmd.Flags().BoolVar(&whitelist, "whitelist", false, "require whitelisted wallets for transfers")
	_ = cmd.MarkFlagRequired("issuer")
	_ = cmd.MarkFlagRequired("supply")
	return cmd
}

func newCreateCampaignCmd() *cobra.Command {
	var (
		asset     string
		price     string
		softCap   string
		minInvest string
		maxInvest string
		info      string
		whitelist bool
	)
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Open a crowdfunding campaign for an asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			assetAddr, err := parseAddress(asset, "asset")
			if err != nil {
				return err
			}
			amounts := make([]decimal.Decimal, 4)
			for i, raw := range []struct{ value, name string }{
				{price, "price"}, {softCap, "soft-cap"}, {minInvest, "min-investment"}, {maxInvest, "max-investment"},
			} {
				if amounts[i], err = parseAmount(raw.value, raw.name); err != nil {
					return err
				}
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			record, err := rt.service.CreateCampaign(cmd.Context(), platform.CreateCampaignRequest{
				Asset:             assetAddr,
				PricePerToken:     amounts[0],
				SoftCap:           amounts[1],
				MinInvestment:     amounts[2],
				MaxInvestment:     amounts[3],
				WhitelistRequired: whitelist,
				Info:              info,
			})
			if err != nil {
				return err
			}
			return printCreation(record)
		},
	}
	cmd.Flags().StringVar(&asset, "asset", "", "asset instance address")
	cmd.Flags().StringVar(&price, "price", "", "price per token")
	cmd.Flags().StringVar(&softCap, "soft-cap", "", "campaign soft cap")
	cmd.Flags().StringVar(&minInvest, "min-investment", "0", "minimum investment per wallet")
	cmd.Flags().StringVar(&maxInvest, "max-investment", "0", "maximum investment per wallet")
	cmd.Flags().StringVar(&info, "info", "", "campaign info hash")
	cmd.Flags().BoolVar(&whitelist, "whitelist", false, "require whitelisted investors")
	_ = cmd.MarkFlagRequired("asset")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("soft-cap")
	return cmd
}

func newCreatePayoutManagerCmd() *cobra.Command {
	var (
		asset string
		info  string
	)
	cmd := &cobra.Command{
		Use:   "payout-manager",
		Short: "Create a revenue payout manager for an asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			assetAddr, err := parseAddress(asset, "asset")
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()
			record, err := rt.service.CreatePayoutManager(cmd.Context(), platform.CreatePayoutManagerRequest{
				Asset: assetAddr,
				Info:  info,
			})
			if err != nil {
				return err
			}
			return printCreation(record)
		},
	}
	cmd.Flags().StringVar(&asset, "asset", "", "asset instance address")
	cmd.Flags().StringVar(&info, "info", "", "payout manager info hash")
	_ = cmd.MarkFlagRequired("asset")
	return cmd
}

func printCreation(record *platform.CreationRecord) error {
	out := map[string]interface{}{
		"kind":     string(record.Kind),
		"instance": record.Instance.Hex(),
		"owner":    record.Owner.Hex(),
		"id":       record.ID.String(),
		"txHash":   record.Raw.TxHash.Hex(),
	}
	if record.Asset != (common.Address{}) {
		out["asset"] = record.Asset.Hex()
	}
	return printJSON(out)
}

func parseAddress(raw, flag string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid --%s address: %q", flag, raw)
	}
	return common.HexToAddress(raw), nil
}

func parseAmount(raw, flag string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s amount: %q", flag, raw)
	}
	return amount, nil
}
