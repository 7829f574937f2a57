package service

import "errors"

var (
	ErrEmptyReserves       = errors.New("empty reserves")
	ErrTokenAmountRequired = errors.New("token amount is required for initial liquidity")
	ErrNothingToDeposit    = errors.New("eth amount must be greater than zero")
	ErrSignerUnavailable   = errors.New("no signer configured")
)
