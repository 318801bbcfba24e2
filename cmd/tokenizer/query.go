package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ampnet/tokenizer-middleware/pkg/history"
	"github.com/ampnet/tokenizer-middleware/pkg/platform"
)

func instanceKind(raw string) (platform.InstanceKind, error) {
	switch raw {
	case "issuer":
		return platform.KindIssuer, nil
	case "asset":
		return platform.KindAsset, nil
	case "campaign":
		return platform.KindCampaign, nil
	case "payout-manager":
		return platform.KindPayoutManager, nil
	default:
		return "", fmt.Errorf("unknown kind %q (issuer, asset, campaign, payout-manager)", raw)
	}
}

func newListCmd() *cobra.Command {
	var (
		kind   string
		issuer string
		asset  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deployed instances via the factories",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := instanceKind(kind)
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()

			discovery := rt.service.Discovery()
			var addrs []string
			switch {
			case issuer != "":
				issuerAddr, err := parseAddress(issuer, "issuer")
				if err != nil {
					return err
				}
				out, err := discovery.ListForIssuer(cmd.Context(), k, issuerAddr)
				if err != nil {
					return err
				}
				for _, a := range out {
					addrs = append(addrs, a.Hex())
				}
			case asset != "":
				assetAddr, err := parseAddress(asset, "asset")
				if err != nil {
					return err
				}
				out, err := discovery.ListForAsset(cmd.Context(), k, assetAddr)
				if err != nil {
					return err
				}
				for _, a := range out {
					addrs = append(addrs, a.Hex())
				}
			default:
				out, err := discovery.ListForKind(cmd.Context(), k)
				if err != nil {
					return err
				}
				for _, a := range out {
					addrs = append(addrs, a.Hex())
				}
			}
			return printJSON(map[string]interface{}{"instances": addrs})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "issuer", "instance kind")
	cmd.Flags().StringVar(&issuer, "issuer", "", "narrow to one issuer")
	cmd.Flags().StringVar(&asset, "asset", "", "narrow to one asset (campaigns and payout managers)")
	return cmd
}

func newStateCmd() *cobra.Command {
	var (
		kind    string
		address string
	)
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Read an instance's on-chain state",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := instanceKind(kind)
			if err != nil {
				return err
			}
			addr, err := parseAddress(address, "address")
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()

			switch k {
			case platform.KindIssuer:
				state, err := rt.service.IssuerState(cmd.Context(), addr)
				if err != nil {
					return err
				}
				return printJSON(state)
			case platform.KindAsset:
				state, err := rt.service.AssetState(cmd.Context(), addr)
				if err != nil {
					return err
				}
				return printJSON(state)
			case platform.KindCampaign:
				state, err := rt.service.CampaignState(cmd.Context(), addr)
				if err != nil {
					return err
				}
				return printJSON(state)
			default:
				state, err := rt.service.PayoutManagerState(cmd.Context(), addr)
				if err != nil {
					return err
				}
				return printJSON(state)
			}
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "instance kind")
	cmd.Flags().StringVar(&address, "address", "", "instance address")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var (
		wallet string
		issuer string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Reconstruct a wallet's transaction history",
		RunE: func(cmd *cobra.Command, args []string) error {
			walletAddr, err := parseAddress(wallet, "wallet")
			if err != nil {
				return err
			}
			issuerAddr, err := parseAddress(issuer, "issuer")
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.close()

			records, err := rt.service.TransactionHistory(cmd.Context(), walletAddr, issuerAddr)
			out := map[string]interface{}{"transactions": records}
			if err != nil {
				var partial *history.PartialError
				if !errors.As(err, &partial) {
					return err
				}
				out["incomplete"] = true
				failures := make([]map[string]string, len(partial.Failures))
				for i, f := range partial.Failures {
					failures[i] = map[string]string{
						"instance": f.Instance.Hex(),
						"event":    f.Event,
					}
				}
				out["failures"] = failures
			}
			return printJSON(out)
		},
	}
	cmd.Flags().StringVar(&wallet, "wallet", "", "wallet address")
	cmd.Flags().StringVar(&issuer, "issuer", "", "issuer whose instances are scanned")
	_ = cmd.MarkFlagRequired("wallet")
	_ = cmd.MarkFlagRequired("issuer")
	return cmd
}
