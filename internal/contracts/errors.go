package contracts

import "errors"

var (
	// ErrTxReverted is returned by PendingTx.Wait when the transaction was
	// mined with a failed status.
	ErrTxReverted = errors.New("transaction reverted")

	ErrUnexpectedOutput = errors.New("unexpected contract output")
)
