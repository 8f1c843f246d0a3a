// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/thor"
)

// Period for marshal the reward period
type Period struct {
	Start    uint64                `json:"start"`
	End      uint64                `json:"end"`
	Rate     *math.HexOrDecimal256 `json:"rate"`
	Status   string                `json:"status"`
	Duration uint64                `json:"duration"`
}

// Snapshot for marshal the whole pool state
type Snapshot struct {
	Time                 uint64                `json:"time"`
	StakingAsset         thor.Address          `json:"stakingAsset"`
	RewardAsset          thor.Address          `json:"rewardAsset"`
	Period               Period                `json:"period"`
	TimeRemaining        uint64                `json:"timeRemaining"`
	RewardForDuration    *math.HexOrDecimal256 `json:"rewardForDuration"`
	RewardPerUnitStored  *math.HexOrDecimal256 `json:"rewardPerUnitStored"`
	AccruedRewardPerUnit *math.HexOrDecimal256 `json:"accruedRewardPerUnit"`
	LastUpdateTime       uint64                `json:"lastUpdateTime"`
	TotalStaked          *math.HexOrDecimal256 `json:"totalStaked"`
	TotalAllocated       *math.HexOrDecimal256 `json:"totalAllocated"`
	TotalPaid            *math.HexOrDecimal256 `json:"totalPaid"`
}

// Account for marshal a participant's position
type Account struct {
	Address           thor.Address          `json:"address"`
	Balance           *math.HexOrDecimal256 `json:"balance"`
	RewardPerUnitPaid *math.HexOrDecimal256 `json:"rewardPerUnitPaid"`
	Rewards           *math.HexOrDecimal256 `json:"rewards"`
	Earned            *math.HexOrDecimal256 `json:"earned"`
}

// AmountRequest is the body of stake, withdraw and allocation requests.
type AmountRequest struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// PeriodRequest is the body of a set-period request.
type PeriodRequest struct {
	Start uint64                `json:"start"`
	End   uint64                `json:"end"`
	Total *math.HexOrDecimal256 `json:"total"`
}

// RecoverRequest is the body of a recover request.
type RecoverRequest struct {
	Asset     thor.Address          `json:"asset"`
	Recipient thor.Address          `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
}

func ConvertSnapshot(cfg rewards.Config, s *rewards.Snapshot) *Snapshot {
	return &Snapshot{
		Time:         s.Time,
		StakingAsset: cfg.StakingAsset,
		RewardAsset:  cfg.RewardAsset,
		Period: Period{
			Start:    s.Period.Start,
			End:      s.Period.End,
			Rate:     (*math.HexOrDecimal256)(s.Period.Rate),
			Status:   s.Status.String(),
			Duration: s.Period.Duration(),
		},
		TimeRemaining:        s.TimeRemaining,
		RewardForDuration:    (*math.HexOrDecimal256)(s.RewardForDuration),
		RewardPerUnitStored:  (*math.HexOrDecimal256)(s.RewardPerUnitStored),
		AccruedRewardPerUnit: (*math.HexOrDecimal256)(s.AccruedRewardPerUnit),
		LastUpdateTime:       s.LastUpdateTime,
		TotalStaked:          (*math.HexOrDecimal256)(s.TotalStaked),
		TotalAllocated:       (*math.HexOrDecimal256)(s.Allocated),
		TotalPaid:            (*math.HexOrDecimal256)(s.Paid),
	}
}

func ConvertAccount(a *rewards.AccountView) *Account {
	return &Account{
		Address:           a.Address,
		Balance:           (*math.HexOrDecimal256)(a.Balance),
		RewardPerUnitPaid: (*math.HexOrDecimal256)(a.RewardPerUnitPaid),
		Rewards:           (*math.HexOrDecimal256)(a.Rewards),
		Earned:            (*math.HexOrDecimal256)(a.Earned),
	}
}

func amountOf(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return (*big.Int)(v)
}
