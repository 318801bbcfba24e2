//go:build ignore

// demo-flow.go - Drive a full tokenization round trip against a running
// middleware instance for demo purposes.
//
// PREREQUISITES:
// 1. A dev chain is running with the factory contracts deployed
// 2. The middleware is running (go run cmd/server/main.go --config config.yaml)
//
// Run: go run scripts/demo-flow.go -api http://localhost:8080
//
// The script creates an issuer, an asset and a campaign, whitelists the
// signer wallet, invests, and finally prints the wallet's transaction
// history.

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
)

var apiURL string

func main() {
	flag.StringVar(&apiURL, "api", "http://localhost:8080", "Middleware base URL")
	wallet := flag.String("wallet", "", "Wallet address to whitelist and invest from (defaults to the middleware signer)")
	flag.Parse()

	fmt.Println("=== Tokenizer Demo Flow ===")
	fmt.Printf("API: %s\n\n", apiURL)

	issuer := mustPost("/issuers", map[string]interface{}{
		"info": "demo-issuer-info-hash",
	})
	issuerAddr := issuer["instance"].(string)
	fmt.Printf("✓ Issuer created: %s (id %s)\n", issuerAddr, issuer["id"])

	asset := mustPost("/assets", map[string]interface{}{
		"issuer":             issuerAddr,
		"initialTokenSupply": "1000000",
		"whitelistRequired":  true,
		"name":               "Demo Solar Farm",
		"symbol":             "DSF",
		"info":               "demo-asset-info-hash",
	})
	assetAddr := asset["instance"].(string)
	fmt.Printf("✓ Asset created: %s\n", assetAddr)

	campaign := mustPost("/campaigns", map[string]interface{}{
		"asset":             assetAddr,
		"pricePerToken":     "1",
		"softCap":           "10000",
		"minInvestment":     "100",
		"maxInvestment":     "100000",
		"whitelistRequired": true,
		"info":              "demo-campaign-info-hash",
	})
	campaignAddr := campaign["instance"].(string)
	fmt.Printf("✓ Campaign created: %s\n", campaignAddr)

	investor := *wallet
	if investor == "" {
		investor = issuer["owner"].(string)
	}

	mustPost(fmt.Sprintf("/issuers/%s/wallets/%s/approve", issuerAddr, investor), nil)
	fmt.Printf("✓ Wallet whitelisted: %s\n", investor)

	receipt := mustPost(fmt.Sprintf("/campaigns/%s/invest", campaignAddr), map[string]interface{}{
		"amount": "500",
	})
	fmt.Printf("✓ Invested 500 (tx %s)\n", receipt["txHash"])

	history := mustGet(fmt.Sprintf("/wallets/%s/history?issuer=%s", investor, issuerAddr))
	fmt.Println("\n=== Transaction History ===")
	out, _ := json.MarshalIndent(history, "", "  ")
	fmt.Println(string(out))
}

func mustPost(path string, body map[string]interface{}) map[string]interface{} {
	payload := []byte("{}")
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	resp, err := http.Post(apiURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("✗ POST %s: %v\n", path, err)
		os.Exit(1)
	}
	return decode(resp, path)
}

func mustGet(path string) map[string]interface{} {
	resp, err := http.Get(apiURL + path)
	if err != nil {
		fmt.Printf("✗ GET %s: %v\n", path, err)
		os.Exit(1)
	}
	return decode(resp, path)
}

func decode(resp *http.Response, path string) map[string]interface{} {
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		fmt.Printf("✗ %s: HTTP %d - %s\n", path, resp.StatusCode, raw)
		os.Exit(1)
	}
	var out map[string]interface{}
	json.Unmarshal(raw, &out)
	return out
}
