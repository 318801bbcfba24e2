//go:build ignore

// check-balances.go - Print stablecoin and asset balances for a set of
// wallets through a running middleware instance.
//
// Usage:
//   go run scripts/check-balances.go -api http://localhost:8080 -wallets 0xabc...,0xdef...
//   go run scripts/check-balances.go -wallets 0xabc... -asset 0x123...   # asset token balance

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "Middleware base URL")
	wallets := flag.String("wallets", "", "Comma separated wallet addresses")
	asset := flag.String("asset", "", "Optional asset address; stablecoin balance when empty")
	flag.Parse()

	if *wallets == "" {
		fmt.Println("no wallets given, use -wallets 0x...,0x...")
		return
	}

	label := "USDC"
	query := ""
	if *asset != "" {
		label = *asset
		query = "?asset=" + *asset
	}

	fmt.Println("=== Tokenizer Balance Check ===")
	fmt.Printf("API: %s\n\n", *apiURL)

	for _, wallet := range strings.Split(*wallets, ",") {
		wallet = strings.TrimSpace(wallet)
		balance, err := getBalance(*apiURL, wallet, query)
		if err != nil {
			fmt.Printf("✗ %s: %v\n", wallet, err)
			continue
		}
		fmt.Printf("✓ %s: %s %s\n", wallet, balance, label)
	}
}

func getBalance(apiURL, wallet, query string) (string, error) {
	resp, err := http.Get(fmt.Sprintf("%s/wallets/%s/balance%s", apiURL, wallet, query))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP %d - %s", resp.StatusCode, raw)
	}
	var out struct {
		Balance string `json:"balance"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	return out.Balance, nil
}
