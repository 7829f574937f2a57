// Package liquidity adds liquidity to a token/ETH exchange pool: it approves
// the exchange to pull tokens, deposits the tokens together with ETH, and
// computes the token amount that keeps the pool ratio unchanged.
package liquidity

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PendingTx is a submitted transaction that has not been observed final yet.
type PendingTx interface {
	Hash() common.Hash
	// Wait blocks until the transaction is mined. A reverted transaction is
	// reported as an error.
	Wait(ctx context.Context) (*types.Receipt, error)
}

// Token is the ERC20 side of the pool.
type Token interface {
	Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (PendingTx, error)
}

// Exchange is the pool contract. opts.Value carries the ETH sent along with
// the deposit.
type Exchange interface {
	Address() common.Address
	AddLiquidity(opts *bind.TransactOpts, tokenAmount *big.Int) (PendingTx, error)
}

// Receipts holds the confirmations of a successful AddLiquidity.
type Receipts struct {
	Approval *types.Receipt
	Deposit  *types.Receipt
}

// Provider performs the approve-then-deposit sequence against a single
// token/exchange pair.
type Provider struct {
	logger   *slog.Logger
	token    Token
	exchange Exchange
}

// NewProvider returns a Provider that approves exchange as the spender of
// token.
func NewProvider(logger *slog.Logger, token Token, exchange Exchange) *Provider {
	return &Provider{
		logger:   logger,
		token:    token,
		exchange: exchange,
	}
}

// AddLiquidity approves the exchange for tokenAmount, waits for the approval
// to be mined, then calls the exchange's addLiquidity with nativeAmount
// attached and waits for that too. It stops at the first failure; the
// deposit is never sent unless the approval succeeded. signer is not
// modified.
func (p *Provider) AddLiquidity(ctx context.Context, signer *bind.TransactOpts, tokenAmount, nativeAmount *big.Int) (*Receipts, error) {
	if signer == nil {
		return nil, p.fail(newError(KindAuthorization, "approve", ErrNilSigner))
	}
	if !validAmount(tokenAmount) || !validAmount(nativeAmount) {
		return nil, p.fail(newError(KindAuthorization, "approve", ErrInvalidAmount))
	}

	spender := p.exchange.Address()
	p.logger.Debug("approving exchange", "spender", spender.Hex(), "from", signer.From.Hex(), "amount", tokenAmount.String())

	approveOpts := transactOpts(ctx, signer, nil)
	approveTx, err := p.token.Approve(approveOpts, spender, tokenAmount)
	if err != nil {
		return nil, p.fail(newError(KindAuthorization, "approve", err))
	}
	approval, err := approveTx.Wait(ctx)
	if err != nil {
		return nil, p.fail(newError(KindAuthorization, "approve", err), "tx", approveTx.Hash().Hex())
	}
	p.logger.Debug("approval mined", "tx", approveTx.Hash().Hex(), "block", approval.BlockNumber)

	depositOpts := transactOpts(ctx, signer, nativeAmount)
	depositTx, err := p.exchange.AddLiquidity(depositOpts, tokenAmount)
	if err != nil {
		return nil, p.fail(newError(KindDeposit, "addLiquidity", err))
	}
	deposit, err := depositTx.Wait(ctx)
	if err != nil {
		return nil, p.fail(newError(KindDeposit, "addLiquidity", err), "tx", depositTx.Hash().Hex())
	}

	p.logger.Info("liquidity added",
		"token_amount", tokenAmount.String(),
		"native_amount", nativeAmount.String(),
		"approve_tx", approveTx.Hash().Hex(),
		"deposit_tx", depositTx.Hash().Hex(),
	)
	return &Receipts{Approval: approval, Deposit: deposit}, nil
}

func (p *Provider) fail(err *Error, args ...any) *Error {
	p.logger.Error("add liquidity failed", append([]any{"kind", err.Kind.String(), "op", err.Op, "err", err.Err}, args...)...)
	return err
}

// transactOpts copies signer so that the caller's options are never mutated
// between the two transactions.
func transactOpts(ctx context.Context, signer *bind.TransactOpts, value *big.Int) *bind.TransactOpts {
	opts := *signer
	opts.Context = ctx
	if value != nil {
		opts.Value = new(big.Int).Set(value)
	} else {
		opts.Value = nil
	}
	return &opts
}

func validAmount(v *big.Int) bool {
	return v != nil && v.Sign() >= 0
}
