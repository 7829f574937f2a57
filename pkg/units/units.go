// Package units converts between human-readable decimal amounts and the
// integer minor units (wei, token base units) used on chain.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// EtherDecimals is the number of decimal places between ether and wei.
const EtherDecimals int32 = 18

const (
	// maxDigits is the digit count of the largest uint256.
	maxDigits = 78
	// maxInputLen fits a full uint256 plus 77 fractional digits and a point.
	maxInputLen = 2*maxDigits + 1
)

var (
	ErrInvalidDecimal = errors.New("invalid decimal amount")
	ErrNegative       = errors.New("amount must not be negative")
	ErrTooPrecise     = errors.New("fractional component exceeds decimals")
	ErrOutOfRange     = errors.New("amount does not fit in uint256")
)

// ParseUnits scales the decimal string s by 10^decimals and returns the exact
// integer result. An empty string parses as zero. Inputs carrying more
// significant fractional digits than decimals are rejected rather than
// rounded. Exponent notation is not accepted and the result must fit in a
// uint256.
func ParseUnits(s string, decimals int32) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "0"
	}
	if len(s) > maxInputLen {
		return nil, fmt.Errorf("%w: %d characters", ErrOutOfRange, len(s))
	}
	if strings.ContainsAny(s, "eE") {
		return nil, fmt.Errorf("%w %q: exponent notation is not supported", ErrInvalidDecimal, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidDecimal, s, err)
	}
	if d.Sign() < 0 {
		return nil, ErrNegative
	}

	// Bound the integer digits of the scaled value before materializing it.
	coeff := d.Coefficient()
	if coeff.Sign() != 0 && len(coeff.String())+int(d.Exponent())+int(decimals) > maxDigits {
		return nil, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}

	scaled := d.Shift(decimals)
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrTooPrecise, s, decimals)
	}
	v := scaled.BigInt()
	if v.BitLen() > 256 {
		return nil, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	return v, nil
}

// ParseEther parses an ether amount into wei.
func ParseEther(s string) (*big.Int, error) {
	return ParseUnits(s, EtherDecimals)
}

// FormatUnits renders v minor units as a decimal string with trailing zeros
// trimmed.
func FormatUnits(v *big.Int, decimals int32) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -decimals).String()
}

// FormatEther renders a wei amount in ether.
func FormatEther(v *big.Int) string {
	return FormatUnits(v, EtherDecimals)
}
