// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards implements a staking reward pool: participants stake one
// asset and accrue another at a rate set by the pool administrator.
package rewards

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/rewards/accumulator"
	"github.com/vechain/rewardpool/builtin/rewards/clock"
	"github.com/vechain/rewardpool/builtin/rewards/fixedpoint"
	"github.com/vechain/rewardpool/builtin/rewards/ledger"
	"github.com/vechain/rewardpool/builtin/rewards/period"
	"github.com/vechain/rewardpool/builtin/rewards/transfer"
	"github.com/vechain/rewardpool/builtin/solidity"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var logger = log.WithContext("pkg", "rewards")

func SetLogger(l log.Logger) {
	logger = l
}

var (
	slotStakingAsset   = thor.BytesToBytes32([]byte("staking-asset"))
	slotRewardAsset    = thor.BytesToBytes32([]byte("reward-asset"))
	slotGenesis        = thor.BytesToBytes32([]byte("genesis"))
	slotTotalAllocated = thor.BytesToBytes32([]byte("total-allocated"))
	slotTotalPaid      = thor.BytesToBytes32([]byte("total-paid"))
)

// Config describes a pool. The period bounds only matter when the pool is
// initialized; afterwards the stored period is authoritative.
type Config struct {
	Address         thor.Address
	StakingAsset    thor.Address
	RewardAsset     thor.Address
	StakingDecimals uint8
	RewardDecimals  uint8
	PeriodStart     uint64
	PeriodEnd       uint64
}

func (c *Config) Validate() error {
	if c.StakingAsset.IsZero() || c.RewardAsset.IsZero() {
		return errors.New("staking and reward assets are required")
	}
	if c.StakingAsset == c.RewardAsset {
		return errors.New("staking and reward assets must differ")
	}
	if c.PeriodEnd <= c.PeriodStart {
		return errors.Wrapf(period.ErrInvalidPeriod, "initial period [%d, %d)", c.PeriodStart, c.PeriodEnd)
	}
	if _, err := fixedpoint.ScaleFactor(c.StakingDecimals, c.RewardDecimals); err != nil {
		return err
	}
	return nil
}

// Dependencies are the pool's collaborators. Recoverer and Emitter are
// optional.
type Dependencies struct {
	Staking   transfer.StakingToken
	Reward    transfer.RewardToken
	Recoverer transfer.Recoverer
	Clock     clock.Clock
	Emitter   Emitter
}

type genesis struct {
	StakingDecimals uint8
	RewardDecimals  uint8
	Time            uint64
}

// Pool distributes a reward asset to the holders of a staking asset, pro
// rata to stake and time staked.
//
// A Pool is not safe for concurrent use. Every mutating operation reads the
// clock once, settles the accumulator, applies its effect, then calls out to
// the transfer collaborator. Any failure restores the state as it was before
// the operation.
type Pool struct {
	cfg   Config
	state *state.State
	scale *big.Int

	accumulator *accumulator.Service
	period      *period.Service
	ledger      *ledger.Service

	stakingAsset   *solidity.Address
	rewardAsset    *solidity.Address
	genesis        *solidity.Raw[*genesis]
	totalAllocated *solidity.Uint256
	totalPaid      *solidity.Uint256

	staking   transfer.StakingToken
	reward    transfer.RewardToken
	recoverer transfer.Recoverer
	clock     clock.Clock
	emitter   Emitter

	entered bool
}

// New binds a pool to st. If st already holds an initialized pool, its
// assets and decimals must match cfg.
func New(st *state.State, cfg Config, deps Dependencies) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pool config")
	}
	if deps.Staking == nil || deps.Reward == nil || deps.Clock == nil {
		return nil, errors.New("staking token, reward token and clock are required")
	}
	scale, err := fixedpoint.ScaleFactor(cfg.StakingDecimals, cfg.RewardDecimals)
	if err != nil {
		return nil, err
	}

	sctx := solidity.NewContext(cfg.Address, st)
	p := &Pool{
		cfg:   cfg,
		state: st,
		scale: scale,

		accumulator: accumulator.New(sctx, scale),
		period:      period.New(sctx),
		ledger:      ledger.New(sctx, scale),

		stakingAsset:   solidity.NewAddress(sctx, slotStakingAsset),
		rewardAsset:    solidity.NewAddress(sctx, slotRewardAsset),
		genesis:        solidity.NewRaw[*genesis](sctx, slotGenesis),
		totalAllocated: solidity.NewUint256(sctx, slotTotalAllocated),
		totalPaid:      solidity.NewUint256(sctx, slotTotalPaid),

		staking:   deps.Staking,
		reward:    deps.Reward,
		recoverer: deps.Recoverer,
		clock:     deps.Clock,
		emitter:   deps.Emitter,
	}
	if p.emitter == nil {
		p.emitter = NoopEmitter{}
	}

	g, err := p.genesis.Get()
	if err != nil {
		return nil, err
	}
	if g != nil {
		if err := p.verify(g); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Pool) verify(g *genesis) error {
	staking, err := p.stakingAsset.Get()
	if err != nil {
		return err
	}
	reward, err := p.rewardAsset.Get()
	if err != nil {
		return err
	}
	if staking != p.cfg.StakingAsset || reward != p.cfg.RewardAsset ||
		g.StakingDecimals != p.cfg.StakingDecimals || g.RewardDecimals != p.cfg.RewardDecimals {
		return errors.Wrapf(ErrConfigMismatch, "stored staking %v/%d reward %v/%d", staking, g.StakingDecimals, reward, g.RewardDecimals)
	}
	return nil
}

func (p *Pool) Initialized() (bool, error) {
	g, err := p.genesis.Get()
	if err != nil {
		return false, err
	}
	return g != nil, nil
}

// Initialize writes the genesis state: the configured period with a zero
// rate, nothing staked and nothing allocated.
func (p *Pool) Initialize() error {
	initialized, err := p.Initialized()
	if err != nil {
		return err
	}
	if initialized {
		return ErrAlreadyInitialized
	}

	now := p.clock.Now()
	rev := p.state.NewCheckpoint()
	if err := p.writeGenesis(now); err != nil {
		p.state.RevertTo(rev)
		return err
	}
	if err := p.state.Commit(); err != nil {
		return errors.Wrap(err, "commit genesis")
	}
	logger.Info("pool initialized",
		"address", p.cfg.Address,
		"staking", p.cfg.StakingAsset,
		"reward", p.cfg.RewardAsset,
		"start", p.cfg.PeriodStart,
		"end", p.cfg.PeriodEnd,
	)
	return nil
}

func (p *Pool) writeGenesis(now uint64) error {
	p.stakingAsset.Set(p.cfg.StakingAsset)
	p.rewardAsset.Set(p.cfg.RewardAsset)
	if err := p.genesis.Upsert(&genesis{
		StakingDecimals: p.cfg.StakingDecimals,
		RewardDecimals:  p.cfg.RewardDecimals,
		Time:            now,
	}); err != nil {
		return err
	}
	if _, _, err := p.period.Set(p.cfg.PeriodStart, p.cfg.PeriodEnd, new(big.Int), new(big.Int)); err != nil {
		return err
	}
	per, err := p.period.Get()
	if err != nil {
		return err
	}
	return p.accumulator.Reset(now, per.ApplicableTime(now))
}

func (p *Pool) Config() Config {
	return p.cfg
}

// ScaleFactor is the fixed-point factor of reward-per-unit values.
func (p *Pool) ScaleFactor() *big.Int {
	return new(big.Int).Set(p.scale)
}

func (p *Pool) ensureInitialized() error {
	initialized, err := p.Initialized()
	if err != nil {
		return err
	}
	if !initialized {
		return ErrNotInitialized
	}
	return nil
}

// run executes body as one all-or-nothing operation.
func (p *Pool) run(op string, body func(now uint64) ([]*Event, error)) error {
	if p.entered {
		metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": "reentrant"})
		return errors.Wrap(ErrReentrantCall, op)
	}
	p.entered = true
	defer func() { p.entered = false }()

	if err := p.ensureInitialized(); err != nil {
		return err
	}

	now := p.clock.Now()
	rev := p.state.NewCheckpoint()
	events, err := body(now)
	if err != nil {
		p.state.RevertTo(rev)
		metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": outcome(err)})
		logger.Debug("operation reverted", "op", op, "time", now, "err", err)
		return err
	}
	if err := p.state.Commit(); err != nil {
		// the external transfer already happened; storage is now behind it
		p.state.RevertTo(rev)
		metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": "fatal"})
		logger.Error("failed to commit pool state", "op", op, "time", now, "err", err)
		return errors.Wrap(err, "commit")
	}

	metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": "ok"})
	p.observe()
	p.emit(events)
	return nil
}

// updateReward advances the accumulator to now and, when account is given,
// settles that account against it.
func (p *Pool) updateReward(now uint64, account *thor.Address) (*big.Int, error) {
	per, err := p.period.Get()
	if err != nil {
		return nil, err
	}
	acc, err := p.accumulator.Advance(per.ApplicableTime(now), per.Rate)
	if err != nil {
		return nil, errors.Wrap(err, "advance accumulator")
	}
	if account != nil {
		if _, err := p.ledger.Settle(*account, acc); err != nil {
			return nil, errors.Wrap(err, "settle account")
		}
	}
	return acc, nil
}

func (p *Pool) emit(events []*Event) {
	if len(events) == 0 {
		return
	}
	if err := p.emitter.Emit(events...); err != nil {
		metricEmitFailures().Add(1)
		logger.Warn("failed to emit events", "count", len(events), "err", err)
	}
}
