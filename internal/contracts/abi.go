// Package contracts binds the ERC20 token and the token/ETH exchange used
// for liquidity provision.
package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal ABIs: only the methods this service calls.

const erc20ABIJSON = `[
	{
		"name": "approve",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "spender", "type": "address"},
			{"name": "amount",  "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "bool"}]
	},
	{
		"name": "allowance",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "owner",   "type": "address"},
			{"name": "spender", "type": "address"}
		],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "balanceOf",
		"type": "function",
		"stateMutability": "view",
		"inputs": [{"name": "account", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	}
]`

const exchangeABIJSON = `[
	{
		"name": "addLiquidity",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [{"name": "_amount", "type": "uint256"}],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "getReserve",
		"type": "function",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "balanceOf",
		"type": "function",
		"stateMutability": "view",
		"inputs": [{"name": "account", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	}
]`

var (
	TokenABI    = mustParseABI(erc20ABIJSON)
	ExchangeABI = mustParseABI(exchangeABIJSON)
)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic("contracts: bad ABI: " + err.Error())
	}
	return parsed
}
