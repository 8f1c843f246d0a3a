// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fixedpoint

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		name     string
		staking  uint8
		reward   uint8
		expected string
		err      error
	}{
		{"same decimals", 18, 18, "1000000000000000000", nil},
		{"six decimal reward", 18, 6, "1000000000000000000000000000000", nil},
		{"six decimal staking", 6, 18, "1000000", nil},
		{"zero decimals", 0, 0, "1000000000000000000", nil},
		{"exponent zero", 0, 18, "1", nil},
		{"negative exponent", 0, 19, "", ErrUnsupportedDecimals},
		{"exponent too large", 60, 0, "", ErrUnsupportedDecimals},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScaleFactor(tt.staking, tt.reward)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestDecimalsFactor(t *testing.T) {
	factor, inverse := DecimalsFactor(18, 6)
	assert.Equal(t, "1000000000000", factor.String())
	assert.False(t, inverse)

	factor, inverse = DecimalsFactor(6, 18)
	assert.Equal(t, "1000000000000", factor.String())
	assert.True(t, inverse)

	factor, _ = DecimalsFactor(18, 18)
	assert.Equal(t, "1", factor.String())
	assert.Equal(t, "1000000000000000000", Precision.String())
}

func TestPow10(t *testing.T) {
	v, err := Pow10(77)
	require.NoError(t, err)
	assert.True(t, Valid(v))

	_, err = Pow10(78)
	assert.True(t, errors.Is(err, ErrUnsupportedDecimals))
}

func TestMulDiv(t *testing.T) {
	res, err := MulDiv(big.NewInt(7), big.NewInt(3), big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), res)

	// intermediate product above 2^256
	res, err = MulDiv(maxUint256, maxUint256, maxUint256)
	require.NoError(t, err)
	assert.Equal(t, maxUint256, res)

	_, err = MulDiv(maxUint256, big.NewInt(2), big.NewInt(1))
	assert.Equal(t, ErrOverflow, err)

	_, err = MulDiv(big.NewInt(1), big.NewInt(1), big.NewInt(0))
	assert.Equal(t, ErrDivisionByZero, err)

	_, err = MulDiv(big.NewInt(-1), big.NewInt(1), big.NewInt(1))
	assert.Equal(t, ErrUnderflow, err)
}

func TestCheckedArithmetic(t *testing.T) {
	sum, err := Add(big.NewInt(2), big.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), sum)

	_, err = Add(maxUint256, big.NewInt(1))
	assert.Equal(t, ErrOverflow, err)

	diff, err := Sub(big.NewInt(3), big.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, 0, diff.Sign())

	_, err = Sub(big.NewInt(2), big.NewInt(3))
	assert.Equal(t, ErrUnderflow, err)

	prod, err := Mul(big.NewInt(4), big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(20), prod)

	_, err = Mul(maxUint256, big.NewInt(2))
	assert.Equal(t, ErrOverflow, err)

	quo, err := Div(big.NewInt(9), big.NewInt(4))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(2), quo)

	_, err = Div(big.NewInt(9), new(big.Int))
	assert.Equal(t, ErrDivisionByZero, err)

	// nil operands read as zero
	sum, err = Add(nil, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), sum)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(big.NewInt(0)))
	assert.True(t, Valid(maxUint256))
	assert.False(t, Valid(nil))
	assert.False(t, Valid(big.NewInt(-1)))
	assert.False(t, Valid(new(big.Int).Add(maxUint256, big.NewInt(1))))
}
