package contracts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Backend is what the bindings need from a node; *ethclient.Client
// satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// PendingTx is a sent transaction awaiting inclusion.
type PendingTx struct {
	backend bind.DeployBackend
	tx      *types.Transaction
}

// NewPendingTx wraps tx, already sent through backend.
func NewPendingTx(backend bind.DeployBackend, tx *types.Transaction) *PendingTx {
	return &PendingTx{backend: backend, tx: tx}
}

func (p *PendingTx) Hash() common.Hash { return p.tx.Hash() }

// Wait polls for the receipt until it is available or ctx is done.
func (p *PendingTx) Wait(ctx context.Context) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		return nil, fmt.Errorf("wait mined %s: %w", p.tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s (block %s)", ErrTxReverted, p.tx.Hash().Hex(), receipt.BlockNumber)
	}
	return receipt, nil
}

func callUint256(ctx context.Context, c *bind.BoundContract, method string, params ...interface{}) (*big.Int, error) {
	var out []interface{}
	if err := c.Call(&bind.CallOpts{Context: ctx}, &out, method, params...); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("%s: %w: %d values", method, ErrUnexpectedOutput, len(out))
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %T", method, ErrUnexpectedOutput, out[0])
	}
	return v, nil
}
