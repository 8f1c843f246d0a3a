// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package transfer defines how the pool moves assets in and out of its
// custody. Implementations report failure with an error; the pool then rolls
// back the operation that requested the movement.
package transfer

import (
	"math/big"

	"github.com/vechain/rewardpool/thor"
)

//go:generate mockgen -package=transfer -destination=mock_transfer.go github.com/vechain/rewardpool/builtin/rewards/transfer StakingToken,RewardToken,Recoverer

// StakingToken moves the staking asset between a participant and the pool.
type StakingToken interface {
	// Escrow takes amount from the participant into the pool.
	Escrow(from thor.Address, amount *big.Int) error
	// Release hands amount held by the pool back to the participant.
	Release(to thor.Address, amount *big.Int) error
}

// RewardToken pays the reward asset out of the pool.
type RewardToken interface {
	Payout(to thor.Address, amount *big.Int) error
	// Balance is the reward asset currently held by the pool.
	Balance() (*big.Int, error)
}

// Recoverer sends an arbitrary asset held by the pool to a recipient.
type Recoverer interface {
	Recover(asset, to thor.Address, amount *big.Int) error
}
