package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/nulln0ne/exchange-liquidity/internal/liquidity"
	"github.com/nulln0ne/exchange-liquidity/pkg/units"
)

// Pool is the exchange as seen by the service; *contracts.Exchange
// satisfies it. BalanceOf is the account's LP share.
type Pool interface {
	Address() common.Address
	NativeReserve(ctx context.Context) (*big.Int, error)
	TokenReserve(ctx context.Context) (*big.Int, error)
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
}

// TokenReader reads the paired ERC20; *contracts.Token satisfies it.
type TokenReader interface {
	Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error)
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
}

// Depositor is satisfied by *liquidity.Provider.
type Depositor interface {
	AddLiquidity(ctx context.Context, signer *bind.TransactOpts, tokenAmount, nativeAmount *big.Int) (*liquidity.Receipts, error)
}

type Reserves struct {
	Native *big.Int
	Token  *big.Int
}

// Empty reports whether the pool has no ETH yet, in which case the first
// provider sets the price.
func (r *Reserves) Empty() bool {
	return r.Native.Sign() == 0
}

type Quote struct {
	NativeAmount *big.Int
	TokenAmount  *big.Int
	Reserves     *Reserves
}

// Position is an account's standing against the pool.
type Position struct {
	Account      common.Address
	TokenBalance *big.Int
	// Allowance is what the exchange may still pull from Account.
	Allowance *big.Int
	Shares    *big.Int
}

type Deposit struct {
	NativeAmount *big.Int
	TokenAmount  *big.Int
	// Initial is set when the deposit seeded an empty pool.
	Initial    bool
	ApprovalTx common.Hash
	DepositTx  common.Hash
}

// LiquidityService quotes and performs liquidity deposits for one exchange.
type LiquidityService struct {
	BaseService
	pool          Pool
	token         TokenReader
	depositor     Depositor
	signer        *bind.TransactOpts
	tokenDecimals int32
}

// NewLiquidityService constructs a LiquidityService. signer may be nil, in
// which case Provide fails with ErrSignerUnavailable.
func NewLiquidityService(logger *slog.Logger, pool Pool, token TokenReader, depositor Depositor, signer *bind.TransactOpts, tokenDecimals int32) *LiquidityService {
	return &LiquidityService{
		BaseService:   BaseService{logger: logger},
		pool:          pool,
		token:         token,
		depositor:     depositor,
		signer:        signer,
		tokenDecimals: tokenDecimals,
	}
}

// CanSign reports whether Provide can submit transactions.
func (s *LiquidityService) CanSign() bool {
	return s.signer != nil
}

func (s *LiquidityService) Reserves(ctx context.Context) (*Reserves, error) {
	native, err := s.pool.NativeReserve(ctx)
	if err != nil {
		return nil, fmt.Errorf("native reserve: %w", err)
	}
	token, err := s.pool.TokenReserve(ctx)
	if err != nil {
		return nil, fmt.Errorf("token reserve: %w", err)
	}
	s.logger.Debug("reserves loaded", "native", native.String(), "token", token.String())
	return &Reserves{Native: native, Token: token}, nil
}

// Quote returns the token amount that must accompany ethAmount (in ether) to
// keep the pool ratio. It fails with ErrEmptyReserves on an empty pool.
func (s *LiquidityService) Quote(ctx context.Context, ethAmount string) (*Quote, error) {
	r, err := s.Reserves(ctx)
	if err != nil {
		return nil, err
	}
	if r.Empty() {
		return nil, ErrEmptyReserves
	}
	return s.quote(ethAmount, r)
}

func (s *LiquidityService) quote(ethAmount string, r *Reserves) (*Quote, error) {
	nativeAmount, err := units.ParseEther(ethAmount)
	if err != nil {
		return nil, s.logFailure("eth amount rejected", err, "eth_amount", ethAmount)
	}
	tokenAmount, err := liquidity.CalculateTokenAmountWei(nativeAmount, r.Native, r.Token)
	if err != nil {
		return nil, s.logFailure("token amount calculation failed", err, "eth_amount", ethAmount)
	}
	s.logger.Debug("quote computed", "native", nativeAmount.String(), "token", tokenAmount.String())
	return &Quote{NativeAmount: nativeAmount, TokenAmount: tokenAmount, Reserves: r}, nil
}

// Provide deposits ethAmount ether into the pool. On an empty pool the
// caller picks the token amount (tokenAmount, in token display units);
// otherwise tokenAmount is ignored and the ratio-preserving amount is used.
func (s *LiquidityService) Provide(ctx context.Context, ethAmount, tokenAmount string) (*Deposit, error) {
	if s.signer == nil {
		return nil, ErrSignerUnavailable
	}

	r, err := s.Reserves(ctx)
	if err != nil {
		return nil, err
	}

	d := &Deposit{Initial: r.Empty()}
	if d.Initial {
		if tokenAmount == "" {
			return nil, ErrTokenAmountRequired
		}
		if d.NativeAmount, err = units.ParseEther(ethAmount); err != nil {
			return nil, err
		}
		if d.TokenAmount, err = units.ParseUnits(tokenAmount, s.tokenDecimals); err != nil {
			return nil, err
		}
	} else {
		q, err := s.quote(ethAmount, r)
		if err != nil {
			return nil, err
		}
		d.NativeAmount, d.TokenAmount = q.NativeAmount, q.TokenAmount
	}

	if d.NativeAmount.Sign() == 0 {
		return nil, ErrNothingToDeposit
	}

	s.logger.Info("providing liquidity", "initial", d.Initial, "native", d.NativeAmount.String(), "token", d.TokenAmount.String())
	receipts, err := s.depositor.AddLiquidity(ctx, s.signer, d.TokenAmount, d.NativeAmount)
	if err != nil {
		return nil, err
	}
	d.ApprovalTx = receipts.Approval.TxHash
	d.DepositTx = receipts.Deposit.TxHash
	return d, nil
}

// Position reports account's token balance, the allowance it has granted the
// exchange and its LP share.
func (s *LiquidityService) Position(ctx context.Context, account common.Address) (*Position, error) {
	balance, err := s.token.BalanceOf(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("token balance: %w", err)
	}
	allowance, err := s.token.Allowance(ctx, account, s.pool.Address())
	if err != nil {
		return nil, fmt.Errorf("allowance: %w", err)
	}
	shares, err := s.pool.BalanceOf(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("pool share: %w", err)
	}
	s.logger.Debug("position loaded", "account", account.Hex(), "balance", balance.String(), "allowance", allowance.String(), "shares", shares.String())
	return &Position{Account: account, TokenBalance: balance, Allowance: allowance, Shares: shares}, nil
}
