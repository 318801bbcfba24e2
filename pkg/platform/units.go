package platform

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	apperrors "github.com/ampnet/tokenizer-middleware/pkg/app/errors"
)

// TokenDecimals is the fixed decimal precision of every platform token,
// stablecoin included.
const TokenDecimals = 18

// ToWei converts a human-readable token amount to its smallest-unit integer
// representation. Negative amounts and amounts with more than 18 fractional
// digits are rejected rather than truncated.
func ToWei(amount decimal.Decimal) (*big.Int, error) {
	if amount.IsNegative() {
		return nil, apperrors.BadRequestError(nil,
			fmt.Sprintf("amount %s is negative", amount))
	}
	shifted := amount.Shift(TokenDecimals)
	if !shifted.IsInteger() {
		return nil, apperrors.BadRequestError(nil,
			fmt.Sprintf("amount %s has more than %d decimal places", amount, TokenDecimals))
	}
	return shifted.BigInt(), nil
}

// FromWei converts a smallest-unit integer amount back to its human-readable
// decimal form without losing precision.
func FromWei(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, -TokenDecimals)
}
