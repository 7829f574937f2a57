package config

import "errors"

// ErrMissingRPCEndpoint indicates that the required ETH_RPC_URL variable is
// not set in the environment.
var ErrMissingRPCEndpoint = errors.New("missing ETH_RPC_URL environment variable")

// ErrMissingTokenAddress indicates that TOKEN_ADDRESS is not set.
var ErrMissingTokenAddress = errors.New("missing TOKEN_ADDRESS environment variable")

// ErrMissingExchangeAddress indicates that EXCHANGE_ADDRESS is not set.
var ErrMissingExchangeAddress = errors.New("missing EXCHANGE_ADDRESS environment variable")

// ErrInvalidAddress is returned when a contract address is not a hex address.
var ErrInvalidAddress = errors.New("invalid contract address")

// ErrInvalidChainID is returned when CHAIN_ID is not a positive integer.
var ErrInvalidChainID = errors.New("invalid CHAIN_ID")

// ErrInvalidTokenDecimals is returned when TOKEN_DECIMALS is outside 0..77.
var ErrInvalidTokenDecimals = errors.New("invalid TOKEN_DECIMALS")
