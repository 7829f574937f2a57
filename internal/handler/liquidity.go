package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v3"
	"github.com/nulln0ne/exchange-liquidity/internal/liquidity"
	"github.com/nulln0ne/exchange-liquidity/internal/service"
	"github.com/nulln0ne/exchange-liquidity/pkg/units"
)

type LiquidityHandler struct {
	BaseHandler
	service       *service.LiquidityService
	tokenDecimals int32
}

func NewLiquidityHandler(logger *slog.Logger, svc *service.LiquidityService, tokenDecimals int32) *LiquidityHandler {
	return &LiquidityHandler{
		BaseHandler: BaseHandler{
			logger: logger,
		},
		service:       svc,
		tokenDecimals: tokenDecimals,
	}
}

// Register mounts the liquidity routes on app.
func (h *LiquidityHandler) Register(app *fiber.App) {
	app.Get("/reserves", h.Reserves())
	app.Get("/quote", h.Quote())
	app.Post("/liquidity", h.Provide())
	app.Get("/position", h.Position())
}

type QuoteRequest struct {
	EthAmount string `query:"eth_amount" json:"eth_amount"`
}

type PositionRequest struct {
	Account string `query:"account" json:"account"`
}

type PositionResponse struct {
	Account      string `json:"account"`
	TokenBalance string `json:"token_balance"`
	Allowance    string `json:"allowance"`
	Shares       string `json:"shares"`
}

type ProvideRequest struct {
	EthAmount   string `json:"eth_amount"`
	TokenAmount string `json:"token_amount"`
}

type ReservesResponse struct {
	Native        string `json:"native"`
	Token         string `json:"token"`
	NativeDisplay string `json:"native_display"`
	TokenDisplay  string `json:"token_display"`
}

type ProvideResponse struct {
	NativeAmount string `json:"native_amount"`
	TokenAmount  string `json:"token_amount"`
	Initial      bool   `json:"initial"`
	ApprovalTx   string `json:"approval_tx"`
	DepositTx    string `json:"deposit_tx"`
}

func (h *LiquidityHandler) Reserves() fiber.Handler {
	return func(c fiber.Ctx) error {
		r, err := h.service.Reserves(context.Background())
		if err != nil {
			return h.handleServiceError(err)
		}
		return c.JSON(ReservesResponse{
			Native:        r.Native.String(),
			Token:         r.Token.String(),
			NativeDisplay: units.FormatEther(r.Native),
			TokenDisplay:  units.FormatUnits(r.Token, h.tokenDecimals),
		})
	}
}

// Quote responds with the token amount, in minor units, matching eth_amount.
func (h *LiquidityHandler) Quote() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req QuoteRequest
		if err := c.Bind().Query(&req); err != nil {
			return h.badInput("query parameters", err, ErrInvalidQueryParameters)
		}
		if req.EthAmount == "" {
			return ErrAmountRequired
		}

		q, err := h.service.Quote(context.Background(), req.EthAmount)
		if err != nil {
			return h.handleServiceError(err)
		}

		h.logger.Debug("quote computed", "eth_amount", req.EthAmount, "token_amount", q.TokenAmount.String())
		return c.SendString(q.TokenAmount.String())
	}
}

// Position responds with an account's token balance, the allowance it has
// granted the exchange and its LP share, all in minor units.
func (h *LiquidityHandler) Position() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req PositionRequest
		if err := c.Bind().Query(&req); err != nil {
			return h.badInput("query parameters", err, ErrInvalidQueryParameters)
		}
		if req.Account == "" {
			return ErrAccountRequired
		}
		if !common.IsHexAddress(req.Account) {
			return ErrInvalidAccount
		}

		p, err := h.service.Position(context.Background(), common.HexToAddress(req.Account))
		if err != nil {
			return h.handleServiceError(err)
		}

		return c.JSON(PositionResponse{
			Account:      p.Account.Hex(),
			TokenBalance: p.TokenBalance.String(),
			Allowance:    p.Allowance.String(),
			Shares:       p.Shares.String(),
		})
	}
}

func (h *LiquidityHandler) Provide() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !h.service.CanSign() {
			return ErrSignerUnavailable
		}

		var req ProvideRequest
		if err := c.Bind().Body(&req); err != nil {
			return h.badInput("body", err, ErrInvalidBody)
		}
		if req.EthAmount == "" {
			return ErrAmountRequired
		}

		d, err := h.service.Provide(context.Background(), req.EthAmount, req.TokenAmount)
		if err != nil {
			return h.handleServiceError(err)
		}

		return c.JSON(ProvideResponse{
			NativeAmount: d.NativeAmount.String(),
			TokenAmount:  d.TokenAmount.String(),
			Initial:      d.Initial,
			ApprovalTx:   d.ApprovalTx.Hex(),
			DepositTx:    d.DepositTx.Hex(),
		})
	}
}

func (h *LiquidityHandler) handleServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyReserves), errors.Is(err, service.ErrTokenAmountRequired):
		return ErrEmptyPoolConflict
	case errors.Is(err, service.ErrSignerUnavailable):
		return ErrSignerUnavailable
	case errors.Is(err, service.ErrNothingToDeposit):
		return ErrAmountNonPositive
	case errors.Is(err, units.ErrInvalidDecimal), errors.Is(err, units.ErrNegative), errors.Is(err, units.ErrTooPrecise), errors.Is(err, units.ErrOutOfRange):
		return NewInvalidAmount("amount", err)
	}

	switch liquidity.KindOf(err) {
	case liquidity.KindAuthorization:
		return ErrApprovalFailed
	case liquidity.KindDeposit:
		return ErrDepositFailed
	default:
		h.logger.Error("liquidity request failed", "err", err)
		return ErrInternal
	}
}
