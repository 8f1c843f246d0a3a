// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fixedpoint implements the unsigned 256-bit arithmetic used by the
// reward accounting. Every operation rounds toward zero and fails rather than
// wrapping when a value leaves the [0, 2^256) range.
package fixedpoint

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// PrecisionDecimals is the number of fractional decimals carried by the
// reward-per-unit accumulator.
const PrecisionDecimals = 18

// maxExponent is the largest n for which 10^n fits in 256 bits.
const maxExponent = 77

var (
	ErrOverflow            = errors.New("fixedpoint: overflow")
	ErrUnderflow           = errors.New("fixedpoint: underflow")
	ErrDivisionByZero      = errors.New("fixedpoint: division by zero")
	ErrUnsupportedDecimals = errors.New("fixedpoint: unsupported decimals")

	bigTen = big.NewInt(10)

	// Precision is one whole unit of the accumulator.
	Precision = new(big.Int).Exp(bigTen, big.NewInt(PrecisionDecimals), nil)
)

// Pow10 returns 10^n.
func Pow10(n uint8) (*big.Int, error) {
	if n > maxExponent {
		return nil, errors.Wrapf(ErrUnsupportedDecimals, "10^%d exceeds 256 bits", n)
	}
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil), nil
}

// ScaleFactor returns the multiplier applied to reward-per-unit values so
// that one whole reward token per one whole staking token is represented as
// 10^PrecisionDecimals, whatever the decimals of the two assets are.
func ScaleFactor(stakingDecimals, rewardDecimals uint8) (*big.Int, error) {
	exp := PrecisionDecimals + int(stakingDecimals) - int(rewardDecimals)
	if exp < 0 || exp > maxExponent {
		return nil, errors.Wrapf(ErrUnsupportedDecimals, "staking decimals %d, reward decimals %d", stakingDecimals, rewardDecimals)
	}
	return Pow10(uint8(exp))
}

// DecimalsFactor returns 10^|rewardDecimals-stakingDecimals|. inverse is set
// when the staking asset has more decimals than the reward asset.
func DecimalsFactor(rewardDecimals, stakingDecimals uint8) (factor *big.Int, inverse bool) {
	if stakingDecimals > rewardDecimals {
		factor, _ = Pow10(stakingDecimals - rewardDecimals)
		return factor, true
	}
	factor, _ = Pow10(rewardDecimals - stakingDecimals)
	return factor, false
}

func toU256(x *big.Int) (*uint256.Int, error) {
	if x == nil {
		return new(uint256.Int), nil
	}
	if x.Sign() < 0 {
		return nil, ErrUnderflow
	}
	v, overflow := uint256.FromBig(x)
	if overflow {
		return nil, ErrOverflow
	}
	return v, nil
}

func operands(a, b *big.Int) (*uint256.Int, *uint256.Int, error) {
	x, err := toU256(a)
	if err != nil {
		return nil, nil, err
	}
	y, err := toU256(b)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// Add returns a+b.
func Add(a, b *big.Int) (*big.Int, error) {
	x, y, err := operands(a, b)
	if err != nil {
		return nil, err
	}
	if _, overflow := x.AddOverflow(x, y); overflow {
		return nil, ErrOverflow
	}
	return x.ToBig(), nil
}

// Sub returns a-b.
func Sub(a, b *big.Int) (*big.Int, error) {
	x, y, err := operands(a, b)
	if err != nil {
		return nil, err
	}
	if _, underflow := x.SubOverflow(x, y); underflow {
		return nil, ErrUnderflow
	}
	return x.ToBig(), nil
}

// Mul returns a*b.
func Mul(a, b *big.Int) (*big.Int, error) {
	x, y, err := operands(a, b)
	if err != nil {
		return nil, err
	}
	if _, overflow := x.MulOverflow(x, y); overflow {
		return nil, ErrOverflow
	}
	return x.ToBig(), nil
}

// Div returns floor(a/b).
func Div(a, b *big.Int) (*big.Int, error) {
	x, y, err := operands(a, b)
	if err != nil {
		return nil, err
	}
	if y.IsZero() {
		return nil, ErrDivisionByZero
	}
	return x.Div(x, y).ToBig(), nil
}

// MulDiv returns floor(a*b/d). The product is kept at 512 bits so only the
// final quotient has to fit in 256 bits.
func MulDiv(a, b, d *big.Int) (*big.Int, error) {
	x, y, err := operands(a, b)
	if err != nil {
		return nil, err
	}
	z, err := toU256(d)
	if err != nil {
		return nil, err
	}
	if z.IsZero() {
		return nil, ErrDivisionByZero
	}
	res, overflow := new(uint256.Int).MulDivOverflow(x, y, z)
	if overflow {
		return nil, ErrOverflow
	}
	return res.ToBig(), nil
}

// Valid reports whether x is a non-nil value in [0, 2^256).
func Valid(x *big.Int) bool {
	if x == nil {
		return false
	}
	_, err := toU256(x)
	return err == nil
}
