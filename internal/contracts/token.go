package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/nulln0ne/exchange-liquidity/internal/liquidity"
)

// Token is an ERC20 binding.
type Token struct {
	backend  Backend
	contract *bind.BoundContract
}

// NewToken binds the ERC20 at address. backend both sends transactions and
// answers calls.
func NewToken(address common.Address, backend Backend) *Token {
	return &Token{
		backend:  backend,
		contract: bind.NewBoundContract(address, TokenABI, backend, backend, backend),
	}
}

// Approve sends approve(spender, amount) and returns without waiting.
func (t *Token) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (liquidity.PendingTx, error) {
	tx, err := t.contract.Transact(opts, "approve", spender, amount)
	if err != nil {
		return nil, fmt.Errorf("approve %s for %s: %w", amount, spender.Hex(), err)
	}
	return NewPendingTx(t.backend, tx), nil
}

func (t *Token) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	return callUint256(ctx, t.contract, "allowance", owner, spender)
}

func (t *Token) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return callUint256(ctx, t.contract, "balanceOf", account)
}
