package handler

import "github.com/gofiber/fiber/v3"

// ErrInvalidQueryParameters indicates that the request query string could not
// be parsed into the expected structure.
var ErrInvalidQueryParameters = fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")

// ErrInvalidBody indicates that the request body is not the expected JSON.
var ErrInvalidBody = fiber.NewError(fiber.StatusBadRequest, "invalid request body")

// ErrAmountRequired is returned when the eth_amount parameter is missing.
var ErrAmountRequired = fiber.NewError(fiber.StatusBadRequest, "eth_amount is required")

// ErrAccountRequired is returned when the account parameter is missing.
var ErrAccountRequired = fiber.NewError(fiber.StatusBadRequest, "account is required")

// ErrInvalidAccount is returned when account is not a hex address.
var ErrInvalidAccount = fiber.NewError(fiber.StatusBadRequest, "invalid account address")

// ErrAmountNonPositive is returned when the deposit amount is zero.
var ErrAmountNonPositive = fiber.NewError(fiber.StatusBadRequest, "eth_amount must be greater than zero")

// ErrEmptyPoolConflict is returned when a ratio is requested from a pool with
// no liquidity, or an initial deposit omits the token amount.
var ErrEmptyPoolConflict = fiber.NewError(fiber.StatusConflict, "pool has no liquidity; initial deposit needs token_amount")

// ErrSignerUnavailable is returned when the server runs without PRIVATE_KEY.
var ErrSignerUnavailable = fiber.NewError(fiber.StatusServiceUnavailable, "deposits are disabled: no signer configured")

// ErrApprovalFailed maps a failed token approval to a 502.
var ErrApprovalFailed = fiber.NewError(fiber.StatusBadGateway, "token approval failed")

// ErrDepositFailed maps a failed addLiquidity transaction to a 502.
var ErrDepositFailed = fiber.NewError(fiber.StatusBadGateway, "liquidity deposit failed")

// ErrInternal signals a generic server-side error.
var ErrInternal = fiber.NewError(fiber.StatusInternalServerError, "internal error")

// NewInvalidAmount wraps an amount parsing error into a 400 Bad Request with
// a descriptive message.
func NewInvalidAmount(field string, err error) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+field+": "+err.Error())
}
