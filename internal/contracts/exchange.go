package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/nulln0ne/exchange-liquidity/internal/liquidity"
)

// Exchange binds the token/ETH exchange. The exchange is itself the LP token,
// so BalanceOf reports a provider's pool share.
type Exchange struct {
	address  common.Address
	backend  Backend
	contract *bind.BoundContract
}

// NewExchange binds the exchange deployed at address.
func NewExchange(address common.Address, backend Backend) *Exchange {
	return &Exchange{
		address:  address,
		backend:  backend,
		contract: bind.NewBoundContract(address, ExchangeABI, backend, backend, backend),
	}
}

func (e *Exchange) Address() common.Address { return e.address }

// AddLiquidity sends addLiquidity(tokenAmount) with opts.Value wei attached.
func (e *Exchange) AddLiquidity(opts *bind.TransactOpts, tokenAmount *big.Int) (liquidity.PendingTx, error) {
	tx, err := e.contract.Transact(opts, "addLiquidity", tokenAmount)
	if err != nil {
		return nil, fmt.Errorf("addLiquidity %s: %w", tokenAmount, err)
	}
	return NewPendingTx(e.backend, tx), nil
}

// TokenReserve is the exchange's token balance as reported by getReserve().
func (e *Exchange) TokenReserve(ctx context.Context) (*big.Int, error) {
	return callUint256(ctx, e.contract, "getReserve")
}

// NativeReserve is the exchange's ETH balance at the latest block.
func (e *Exchange) NativeReserve(ctx context.Context) (*big.Int, error) {
	bal, err := e.backend.BalanceAt(ctx, e.address, nil)
	if err != nil {
		return nil, fmt.Errorf("balance of %s: %w", e.address.Hex(), err)
	}
	return bal, nil
}

func (e *Exchange) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return callUint256(ctx, e.contract, "balanceOf", account)
}
