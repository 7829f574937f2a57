package config

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

const (
	testToken    = "0x00000000000000000000000000000000000000aa"
	testExchange = "0x0000000000000000000000000000000000000abc"
)

func setRequired(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "http://localhost:8545")
	t.Setenv("TOKEN_ADDRESS", testToken)
	t.Setenv("EXCHANGE_ADDRESS", testExchange)
	for _, k := range []string{"ADDR", "LOG_LEVEL", "LOG_FORMAT", "PRIVATE_KEY", "CHAIN_ID", "TOKEN_DECIMALS"} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, ":1337", cfg.Addr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, common.HexToAddress(testToken), cfg.TokenAddress)
	require.Equal(t, common.HexToAddress(testExchange), cfg.ExchangeAddress)
	require.Equal(t, int32(18), cfg.TokenDecimals)
	require.Nil(t, cfg.ChainID)
	require.Empty(t, cfg.PrivateKey)
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ADDR", ":8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CHAIN_ID", "11155111")
	t.Setenv("TOKEN_DECIMALS", "6")
	t.Setenv("PRIVATE_KEY", "deadbeef")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, int64(11155111), cfg.ChainID.Int64())
	require.Equal(t, int32(6), cfg.TokenDecimals)
	require.Equal(t, "deadbeef", cfg.PrivateKey)
}

func TestFromEnv_Errors(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
		want error
	}{
		{"missing_rpc", "ETH_RPC_URL", "", ErrMissingRPCEndpoint},
		{"missing_token", "TOKEN_ADDRESS", "", ErrMissingTokenAddress},
		{"missing_exchange", "EXCHANGE_ADDRESS", "", ErrMissingExchangeAddress},
		{"bad_token", "TOKEN_ADDRESS", "0x1234", ErrInvalidAddress},
		{"bad_chain", "CHAIN_ID", "mainnet", ErrInvalidChainID},
		{"zero_chain", "CHAIN_ID", "0", ErrInvalidChainID},
		{"bad_decimals", "TOKEN_DECIMALS", "-1", ErrInvalidTokenDecimals},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.val)

			_, err := FromEnv()
			require.ErrorIs(t, err, tc.want)
		})
	}
}
