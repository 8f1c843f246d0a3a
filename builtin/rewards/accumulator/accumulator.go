// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accumulator keeps the global reward-per-unit counter. The counter
// grows by rate*dt*scale/totalStaked for every second in which reward is
// being emitted and stays frozen while nothing is staked.
package accumulator

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/rewards/fixedpoint"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/thor"
)

var (
	slotRewardPerUnit = thor.BytesToBytes32([]byte("reward-per-unit-stored"))
	slotLastUpdate    = thor.BytesToBytes32([]byte("last-update-time"))
	slotTotalStaked   = thor.BytesToBytes32([]byte("total-staked"))
)

var ErrTimeRegression = errors.New("accumulator: applicable time before last update")

type Service struct {
	rewardPerUnit *solidity.Uint256
	lastUpdate    *solidity.Uint64
	totalStaked   *solidity.Uint256
	scale         *big.Int
}

func New(sctx *solidity.Context, scale *big.Int) *Service {
	return &Service{
		rewardPerUnit: solidity.NewUint256(sctx, slotRewardPerUnit),
		lastUpdate:    solidity.NewUint64(sctx, slotLastUpdate),
		totalStaked:   solidity.NewUint256(sctx, slotTotalStaked),
		scale:         scale,
	}
}

// Snapshot is the stored accumulator state.
type Snapshot struct {
	RewardPerUnit  *big.Int
	LastUpdateTime uint64
	TotalStaked    *big.Int
}

func (s *Service) Get() (*Snapshot, error) {
	acc, err := s.rewardPerUnit.Get()
	if err != nil {
		return nil, err
	}
	last, err := s.lastUpdate.Get()
	if err != nil {
		return nil, err
	}
	total, err := s.totalStaked.Get()
	if err != nil {
		return nil, err
	}
	return &Snapshot{RewardPerUnit: acc, LastUpdateTime: last, TotalStaked: total}, nil
}

func (s *Service) TotalStaked() (*big.Int, error) {
	return s.totalStaked.Get()
}

func (s *Service) LastUpdateTime() (uint64, error) {
	return s.lastUpdate.Get()
}

// Project returns the accumulator value at the applicable time without
// writing it.
func (s *Service) Project(applicable uint64, rate *big.Int) (*big.Int, error) {
	snap, err := s.Get()
	if err != nil {
		return nil, err
	}
	return s.project(snap, applicable, rate)
}

func (s *Service) project(snap *Snapshot, applicable uint64, rate *big.Int) (*big.Int, error) {
	if applicable < snap.LastUpdateTime {
		return nil, errors.Wrapf(ErrTimeRegression, "applicable %d, last update %d", applicable, snap.LastUpdateTime)
	}
	if snap.TotalStaked.Sign() == 0 || applicable == snap.LastUpdateTime || rate.Sign() == 0 {
		return snap.RewardPerUnit, nil
	}

	emitted, err := fixedpoint.Mul(rate, new(big.Int).SetUint64(applicable-snap.LastUpdateTime))
	if err != nil {
		return nil, errors.Wrap(err, "emitted reward")
	}
	delta, err := fixedpoint.MulDiv(emitted, s.scale, snap.TotalStaked)
	if err != nil {
		return nil, errors.Wrap(err, "reward per unit delta")
	}
	acc, err := fixedpoint.Add(snap.RewardPerUnit, delta)
	if err != nil {
		return nil, errors.Wrap(err, "reward per unit")
	}
	return acc, nil
}

// Advance brings the stored accumulator up to the applicable time and
// returns the new value.
func (s *Service) Advance(applicable uint64, rate *big.Int) (*big.Int, error) {
	snap, err := s.Get()
	if err != nil {
		return nil, err
	}
	acc, err := s.project(snap, applicable, rate)
	if err != nil {
		return nil, err
	}
	if acc.Cmp(snap.RewardPerUnit) != 0 {
		s.rewardPerUnit.Set(acc)
	}
	if applicable != snap.LastUpdateTime {
		s.lastUpdate.Set(applicable)
	}
	return acc, nil
}

// Reset sets the last update time to t without accruing. It is used when a
// new period starts, after the old one has been settled at now.
// A last update time later than now belongs to a pending period and marks no
// accrual, so t may move it back as far as now.
func (s *Service) Reset(now, t uint64) error {
	last, err := s.lastUpdate.Get()
	if err != nil {
		return err
	}
	floor := min(last, now)
	if t < floor {
		return errors.Wrapf(ErrTimeRegression, "reset to %d, last update %d", t, last)
	}
	s.lastUpdate.Set(t)
	return nil
}

func (s *Service) AddStake(amount *big.Int) error {
	total, err := s.totalStaked.Get()
	if err != nil {
		return err
	}
	total, err = fixedpoint.Add(total, amount)
	if err != nil {
		return errors.Wrap(err, "total staked")
	}
	s.totalStaked.Set(total)
	return nil
}

func (s *Service) SubStake(amount *big.Int) error {
	total, err := s.totalStaked.Get()
	if err != nil {
		return err
	}
	total, err = fixedpoint.Sub(total, amount)
	if err != nil {
		return errors.Wrap(err, "total staked")
	}
	s.totalStaked.Set(total)
	return nil
}
