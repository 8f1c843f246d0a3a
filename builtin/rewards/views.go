// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/vechain/rewardpool/builtin/rewards/period"
	"github.com/vechain/rewardpool/thor"
)

// The methods in this file never write state. Time dependent values are
// projected to the clock's current time.

func (p *Pool) Period() (*period.Period, error) {
	return p.period.Get()
}

func (p *Pool) PeriodStartTime() (uint64, error) {
	per, err := p.period.Get()
	if err != nil {
		return 0, err
	}
	return per.Start, nil
}

func (p *Pool) PeriodEndTime() (uint64, error) {
	per, err := p.period.Get()
	if err != nil {
		return 0, err
	}
	return per.End, nil
}

func (p *Pool) PeriodDuration() (uint64, error) {
	per, err := p.period.Get()
	if err != nil {
		return 0, err
	}
	return per.Duration(), nil
}

func (p *Pool) HasStarted() (bool, error) {
	per, err := p.period.Get()
	if err != nil {
		return false, err
	}
	return per.HasStarted(p.clock.Now()), nil
}

func (p *Pool) HasEnded() (bool, error) {
	per, err := p.period.Get()
	if err != nil {
		return false, err
	}
	return per.HasEnded(p.clock.Now()), nil
}

func (p *Pool) TimeRemainingInPeriod() (uint64, error) {
	per, err := p.period.Get()
	if err != nil {
		return 0, err
	}
	return per.TimeRemaining(p.clock.Now()), nil
}

func (p *Pool) LastTimeRewardApplicable() (uint64, error) {
	per, err := p.period.Get()
	if err != nil {
		return 0, err
	}
	return per.ApplicableTime(p.clock.Now()), nil
}

func (p *Pool) RewardRate() (*big.Int, error) {
	per, err := p.period.Get()
	if err != nil {
		return nil, err
	}
	return per.Rate, nil
}

func (p *Pool) RewardForDuration() (*big.Int, error) {
	per, err := p.period.Get()
	if err != nil {
		return nil, err
	}
	return per.RewardForDuration()
}

func (p *Pool) TotalStaked() (*big.Int, error) {
	return p.accumulator.TotalStaked()
}

func (p *Pool) BalanceOf(account thor.Address) (*big.Int, error) {
	acct, err := p.ledger.Get(account)
	if err != nil {
		return nil, err
	}
	return acct.Balance, nil
}

func (p *Pool) accruedAt(now uint64) (*big.Int, error) {
	per, err := p.period.Get()
	if err != nil {
		return nil, err
	}
	return p.accumulator.Project(per.ApplicableTime(now), per.Rate)
}

// AccruedRewardPerUnit is the accumulator projected to now.
func (p *Pool) AccruedRewardPerUnit() (*big.Int, error) {
	return p.accruedAt(p.clock.Now())
}

// Earned is the reward account could claim now.
func (p *Pool) Earned(account thor.Address) (*big.Int, error) {
	acc, err := p.AccruedRewardPerUnit()
	if err != nil {
		return nil, err
	}
	return p.ledger.Earned(account, acc)
}

type AccountView struct {
	Address           thor.Address
	Balance           *big.Int
	RewardPerUnitPaid *big.Int
	Rewards           *big.Int
	Earned            *big.Int
}

func (p *Pool) Account(account thor.Address) (*AccountView, error) {
	acc, err := p.AccruedRewardPerUnit()
	if err != nil {
		return nil, err
	}
	acct, err := p.ledger.Get(account)
	if err != nil {
		return nil, err
	}
	earned, err := acct.Earned(acc, p.scale)
	if err != nil {
		return nil, err
	}
	return &AccountView{
		Address:           account,
		Balance:           acct.Balance,
		RewardPerUnitPaid: acct.RewardPerUnitPaid,
		Rewards:           acct.Rewards,
		Earned:            earned,
	}, nil
}

// Totals are the lifetime reward counters.
type Totals struct {
	Allocated *big.Int
	Paid      *big.Int
}

func (p *Pool) Totals() (*Totals, error) {
	allocated, err := p.totalAllocated.Get()
	if err != nil {
		return nil, err
	}
	paid, err := p.totalPaid.Get()
	if err != nil {
		return nil, err
	}
	return &Totals{Allocated: allocated, Paid: paid}, nil
}

// Snapshot is the whole pool state at one instant.
type Snapshot struct {
	Time                 uint64
	Status               period.Status
	Period               period.Period
	TimeRemaining        uint64
	RewardForDuration    *big.Int
	RewardPerUnitStored  *big.Int
	AccruedRewardPerUnit *big.Int
	LastUpdateTime       uint64
	TotalStaked          *big.Int
	Totals
}

func (p *Pool) Snapshot() (*Snapshot, error) {
	now := p.clock.Now()
	per, err := p.period.Get()
	if err != nil {
		return nil, err
	}
	acc, err := p.accumulator.Get()
	if err != nil {
		return nil, err
	}
	accrued, err := p.accruedAt(now)
	if err != nil {
		return nil, err
	}
	forDuration, err := per.RewardForDuration()
	if err != nil {
		return nil, err
	}
	totals, err := p.Totals()
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Time:                 now,
		Status:               per.Status(now),
		Period:               *per,
		TimeRemaining:        per.TimeRemaining(now),
		RewardForDuration:    forDuration,
		RewardPerUnitStored:  acc.RewardPerUnit,
		AccruedRewardPerUnit: accrued,
		LastUpdateTime:       acc.LastUpdateTime,
		TotalStaked:          acc.TotalStaked,
		Totals:               *totals,
	}, nil
}
