package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var deployerServiceABI = mustParseABI("DeployerService", `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[]},
	{"type":"function","name":"deployIssuerAssetCampaign","stateMutability":"nonpayable",
		"inputs":[{"name":"request","type":"tuple","components":[
			{"name":"issuerFactory","type":"address"},
			{"name":"assetFactory","type":"address"},
			{"name":"cfManagerFactory","type":"address"},
			{"name":"issuerOwner","type":"address"},
			{"name":"issuerStablecoin","type":"address"},
			{"name":"issuerWalletApprover","type":"address"},
			{"name":"issuerInfo","type":"string"},
			{"name":"assetOwner","type":"address"},
			{"name":"assetInitialTokenSupply","type":"uint256"},
			{"name":"assetWhitelistRequired","type":"bool"},
			{"name":"assetName","type":"string"},
			{"name":"assetSymbol","type":"string"},
			{"name":"assetInfo","type":"string"},
			{"name":"cfManagerOwner","type":"address"},
			{"name":"cfManagerPricePerToken","type":"uint256"},
			{"name":"cfManagerSoftcap","type":"uint256"},
			{"name":"cfManagerMinInvestment","type":"uint256"},
			{"name":"cfManagerMaxInvestment","type":"uint256"},
			{"name":"cfManagerTokensToSell","type":"uint256"},
			{"name":"cfManagerWhitelistRequired","type":"bool"},
			{"name":"cfManagerInfo","type":"string"}]}],
		"outputs":[]},
	{"type":"function","name":"deployAssetCampaign","stateMutability":"nonpayable",
		"inputs":[{"name":"request","type":"tuple","components":[
			{"name":"assetFactory","type":"address"},
			{"name":"cfManagerFactory","type":"address"},
			{"name":"issuer","type":"address"},
			{"name":"assetOwner","type":"address"},
			{"name":"assetInitialTokenSupply","type":"uint256"},
			{"name":"assetWhitelistRequired","type":"bool"},
			{"name":"assetName","type":"string"},
			{"name":"assetSymbol","type":"string"},
			{"name":"assetInfo","type":"string"},
			{"name":"cfManagerOwner","type":"address"},
			{"name":"cfManagerPricePerToken","type":"uint256"},
			{"name":"cfManagerSoftcap","type":"uint256"},
			{"name":"cfManagerMinInvestment","type":"uint256"},
			{"name":"cfManagerMaxInvestment","type":"uint256"},
			{"name":"cfManagerTokensToSell","type":"uint256"},
			{"name":"cfManagerWhitelistRequired","type":"bool"},
			{"name":"cfManagerInfo","type":"string"}]}],
		"outputs":[]}
]`)

// DeployIssuerAssetCampaignRequest is the combined deployment request: one
// transaction that creates an issuer, an asset under it and a campaign
// selling that asset. Field names must match the ABI tuple components.
type DeployIssuerAssetCampaignRequest struct {
	IssuerFactory              common.Address
	AssetFactory               common.Address
	CfManagerFactory           common.Address
	IssuerOwner                common.Address
	IssuerStablecoin           common.Address
	IssuerWalletApprover       common.Address
	IssuerInfo                 string
	AssetOwner                 common.Address
	AssetInitialTokenSupply    *big.Int
	AssetWhitelistRequired     bool
	AssetName                  string
	AssetSymbol                string
	AssetInfo                  string
	CfManagerOwner             common.Address
	CfManagerPricePerToken     *big.Int
	CfManagerSoftcap           *big.Int
	CfManagerMinInvestment     *big.Int
	CfManagerMaxInvestment     *big.Int
	CfManagerTokensToSell      *big.Int
	CfManagerWhitelistRequired bool
	CfManagerInfo              string
}

// DeployAssetCampaignRequest creates an asset and a campaign under an
// already existing issuer in one transaction.
type DeployAssetCampaignRequest struct {
	AssetFactory               common.Address
	CfManagerFactory           common.Address
	Issuer                     common.Address
	AssetOwner                 common.Address
	AssetInitialTokenSupply    *big.Int
	AssetWhitelistRequired     bool
	AssetName                  string
	AssetSymbol                string
	AssetInfo                  string
	CfManagerOwner             common.Address
	CfManagerPricePerToken     *big.Int
	CfManagerSoftcap           *big.Int
	CfManagerMinInvestment     *big.Int
	CfManagerMaxInvestment     *big.Int
	CfManagerTokensToSell      *big.Int
	CfManagerWhitelistRequired bool
	CfManagerInfo              string
}

// DeployerService binds the combined deployment helper contract.
type DeployerService struct {
	contract
}

func NewDeployerService(address common.Address, backend bind.ContractBackend) *DeployerService {
	return &DeployerService{newContract(address, deployerServiceABI, backend)}
}

// DeployDeployerService deploys the deployer service contract.
func DeployDeployerService(opts *bind.TransactOpts, backend bind.ContractBackend, bytecode []byte) (common.Address, *types.Transaction, error) {
	return deployContract(opts, backend, deployerServiceABI, bytecode)
}

// DeployIssuerAssetCampaign submits the combined issuer+asset+campaign creation transaction.
func (d *DeployerService) DeployIssuerAssetCampaign(opts *bind.TransactOpts, request DeployIssuerAssetCampaignRequest) (*types.Transaction, error) {
	return d.bound.Transact(opts, "deployIssuerAssetCampaign", request)
}

// DeployAssetCampaign submits the combined asset+campaign creation transaction.
func (d *DeployerService) DeployAssetCampaign(opts *bind.TransactOpts, request DeployAssetCampaignRequest) (*types.Transaction, error) {
	return d.bound.Transact(opts, "deployAssetCampaign", request)
}
