package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

type Config struct {
	Addr        string
	RPCEndpoint string
	LogLevel    string
	LogFormat   string

	TokenAddress    common.Address
	ExchangeAddress common.Address
	TokenDecimals   int32

	// PrivateKey is optional; without it the service only quotes.
	PrivateKey string
	// ChainID is nil when it should be read from the node.
	ChainID *big.Int
}

func FromEnv() (*Config, error) {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":1337"
	}

	rpcURL := os.Getenv("ETH_RPC_URL")
	if rpcURL == "" {
		return nil, ErrMissingRPCEndpoint
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	token, err := addressFromEnv("TOKEN_ADDRESS", ErrMissingTokenAddress)
	if err != nil {
		return nil, err
	}
	exchange, err := addressFromEnv("EXCHANGE_ADDRESS", ErrMissingExchangeAddress)
	if err != nil {
		return nil, err
	}

	decimals := int32(18)
	if s := os.Getenv("TOKEN_DECIMALS"); s != "" {
		d, err := strconv.ParseInt(s, 10, 32)
		// uint256 holds at most 77 decimal digits
		if err != nil || d < 0 || d > 77 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTokenDecimals, s)
		}
		decimals = int32(d)
	}

	var chainID *big.Int
	if s := os.Getenv("CHAIN_ID"); s != "" {
		id, ok := new(big.Int).SetString(s, 10)
		if !ok || id.Sign() <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidChainID, s)
		}
		chainID = id
	}

	cfg := &Config{
		Addr:            addr,
		RPCEndpoint:     rpcURL,
		LogLevel:        logLevel,
		LogFormat:       logFormat,
		TokenAddress:    token,
		ExchangeAddress: exchange,
		TokenDecimals:   decimals,
		PrivateKey:      os.Getenv("PRIVATE_KEY"),
		ChainID:         chainID,
	}

	return cfg, nil
}

func addressFromEnv(key string, missing error) (common.Address, error) {
	v := os.Getenv(key)
	if v == "" {
		return common.Address{}, missing
	}
	if !common.IsHexAddress(v) {
		return common.Address{}, fmt.Errorf("%w: %s=%q", ErrInvalidAddress, key, v)
	}
	return common.HexToAddress(v), nil
}
