package liquidity

import (
	"math/big"

	"github.com/nulln0ne/exchange-liquidity/pkg/uniswapv2"
	"github.com/nulln0ne/exchange-liquidity/pkg/units"
)

const calculateOp = "calculateTokenAmount"

// CalculateTokenAmount returns the token amount to deposit alongside
// desiredNative ether so that the pool ratio is preserved:
//
//	tokenAmount = floor(desiredNativeWei * tokenReserve / reserve)
//
// reserve is the exchange's ETH balance and tokenReserve its token balance,
// both in minor units. An empty desiredNative means zero. A zero reserve is
// an error: an empty pool takes whatever amounts the first provider chooses.
func CalculateTokenAmount(desiredNative string, reserve, tokenReserve *big.Int) (*big.Int, error) {
	return CalculateTokenAmountUnits(desiredNative, units.EtherDecimals, reserve, tokenReserve)
}

// CalculateTokenAmountUnits is CalculateTokenAmount for a native currency
// with the given number of decimals.
func CalculateTokenAmountUnits(desiredNative string, decimals int32, reserve, tokenReserve *big.Int) (*big.Int, error) {
	nativeAmount, err := units.ParseUnits(desiredNative, decimals)
	if err != nil {
		return nil, newError(KindCalculation, calculateOp, err)
	}
	return CalculateTokenAmountWei(nativeAmount, reserve, tokenReserve)
}

// CalculateTokenAmountWei is CalculateTokenAmount for an amount already in
// minor units.
func CalculateTokenAmountWei(nativeAmount, reserve, tokenReserve *big.Int) (*big.Int, error) {
	if !validAmount(nativeAmount) {
		return nil, newError(KindCalculation, calculateOp, ErrInvalidAmount)
	}
	if reserve == nil || tokenReserve == nil || reserve.Sign() < 0 || tokenReserve.Sign() < 0 {
		return nil, newError(KindCalculation, calculateOp, ErrInvalidReserve)
	}
	if reserve.Sign() == 0 {
		return nil, newError(KindCalculation, calculateOp, ErrZeroReserve)
	}

	return uniswapv2.Quote(new(big.Int), nativeAmount, reserve, tokenReserve), nil
}
