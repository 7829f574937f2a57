package uniswapv2

import "math/big"

// Quote returns the amount of B that matches amountA at the current pool
// ratio: floor(amountA * reserveB / reserveA). It mirrors the router's
// quote() and is what keeps a deposit from moving the price.
// reserveA must be non-zero.
func Quote(dst, amountA, reserveA, reserveB *big.Int) *big.Int {
	// dst = amountA * reserveB (multiply first, truncate once)
	dst.Mul(amountA, reserveB)
	// dst = dst / reserveA
	return dst.Div(dst, reserveA)
}
