package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfig = `
chain:
  rpc_url: "http://localhost:8545"
  private_key: "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
contracts:
  issuer_factory: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
  asset_factory: "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
  cf_manager_factory: "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0"
  payout_manager_factory: "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8545", cfg.Chain.RPCURL)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", cfg.Contracts.IssuerFactory)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(31337), cfg.Chain.ChainID)
	assert.Equal(t, 2*time.Minute, cfg.Chain.MiningTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig+`
server:
  port: 3000
  shutdown_timeout: "5s"
logging:
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		drop    string
		wantErr string
	}{
		{"missing rpc url", `rpc_url: "http://localhost:8545"`, "chain.rpc_url is required"},
		{"missing issuer factory", `issuer_factory: "0x5FbDB2315678afecb367f032d93F642f64180aa3"`, "contracts.issuer_factory is required"},
		{"missing asset factory", `asset_factory: "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"`, "contracts.asset_factory is required"},
		{"missing campaign factory", `cf_manager_factory: "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0"`, "contracts.cf_manager_factory is required"},
		{"missing payout manager factory", `payout_manager_factory: "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9"`, "contracts.payout_manager_factory is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			content := strings.Replace(validConfig, tc.drop, "", 1)
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
