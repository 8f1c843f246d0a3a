// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/builtin/rewards/authority"
	"github.com/vechain/rewardpool/thor"
)

// CallerHeader carries the address a mutating request acts as.
const CallerHeader = "X-Caller"

type Pool struct {
	mu   sync.Mutex
	pool *rewards.Pool
	gate authority.Gate
}

// New serves pool. The handlers are the only users of pool once mounted.
func New(pool *rewards.Pool, gate authority.Gate) *Pool {
	return &Pool{
		pool: pool,
		gate: gate,
	}
}

func caller(req *http.Request) (thor.Address, error) {
	v := req.Header.Get(CallerHeader)
	if v == "" {
		return thor.Address{}, utils.HTTPError(errors.New("missing caller"), http.StatusUnauthorized)
	}
	addr, err := thor.ParseAddress(v)
	if err != nil {
		return thor.Address{}, utils.BadRequest(errors.WithMessage(err, "caller"))
	}
	return *addr, nil
}

// participant resolves the account in the path and checks the caller acts
// for it.
func participant(req *http.Request) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return thor.Address{}, utils.BadRequest(errors.WithMessage(err, "address"))
	}
	who, err := caller(req)
	if err != nil {
		return thor.Address{}, err
	}
	if who != *addr {
		return thor.Address{}, utils.Forbidden(errors.New("caller does not own the account"))
	}
	return *addr, nil
}

func (p *Pool) admin(req *http.Request) error {
	who, err := caller(req)
	if err != nil {
		return err
	}
	return p.gate.Authorize(who)
}

func (p *Pool) writeSnapshot(w http.ResponseWriter) error {
	snap, err := p.pool.Snapshot()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, ConvertSnapshot(p.pool.Config(), snap))
}

func (p *Pool) writeAccount(w http.ResponseWriter, addr thor.Address) error {
	acct, err := p.pool.Account(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, ConvertAccount(acct))
}

func (p *Pool) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.writeSnapshot(w)
}

func (p *Pool) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.writeAccount(w, *addr)
}

func (p *Pool) handleAmountOp(op func(*rewards.Pool, thor.Address, *big.Int) error) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		addr, err := participant(req)
		if err != nil {
			return err
		}
		var body AmountRequest
		if err := utils.ParseJSON(req.Body, &body); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}

		p.mu.Lock()
		defer p.mu.Unlock()

		if err := op(p.pool, addr, amountOf(body.Amount)); err != nil {
			return err
		}
		return p.writeAccount(w, addr)
	}
}

func (p *Pool) handleAccountOp(op func(*rewards.Pool, thor.Address) error) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		addr, err := participant(req)
		if err != nil {
			return err
		}

		p.mu.Lock()
		defer p.mu.Unlock()

		if err := op(p.pool, addr); err != nil {
			return err
		}
		return p.writeAccount(w, addr)
	}
}

func (p *Pool) handleSetPeriod(w http.ResponseWriter, req *http.Request) error {
	if err := p.admin(req); err != nil {
		return err
	}
	var body PeriodRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.pool.SetNewPeriod(body.Start, body.End, amountOf(body.Total)); err != nil {
		return err
	}
	return p.writeSnapshot(w)
}

func (p *Pool) handleAddAllocation(w http.ResponseWriter, req *http.Request) error {
	if err := p.admin(req); err != nil {
		return err
	}
	var body AmountRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.pool.AddToRewardsAllocation(amountOf(body.Amount)); err != nil {
		return err
	}
	return p.writeSnapshot(w)
}

func (p *Pool) handleRecover(w http.ResponseWriter, req *http.Request) error {
	if err := p.admin(req); err != nil {
		return err
	}
	var body RecoverRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.pool.RecoverUnsupported(body.Asset, body.Recipient, amountOf(body.Amount)); err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"recovered": body.Amount})
}

func (p *Pool) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pool").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/period").
		Methods(http.MethodPost).
		Name("POST /pool/period").
		HandlerFunc(utils.WrapHandlerFunc(p.handleSetPeriod))
	sub.Path("/allocation").
		Methods(http.MethodPost).
		Name("POST /pool/allocation").
		HandlerFunc(utils.WrapHandlerFunc(p.handleAddAllocation))
	sub.Path("/recover").
		Methods(http.MethodPost).
		Name("POST /pool/recover").
		HandlerFunc(utils.WrapHandlerFunc(p.handleRecover))

	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /pool/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetAccount))
	sub.Path("/accounts/{address}/stake").
		Methods(http.MethodPost).
		Name("POST /pool/accounts/{address}/stake").
		HandlerFunc(utils.WrapHandlerFunc(p.handleAmountOp((*rewards.Pool).Stake)))
	sub.Path("/accounts/{address}/withdraw").
		Methods(http.MethodPost).
		Name("POST /pool/accounts/{address}/withdraw").
		HandlerFunc(utils.WrapHandlerFunc(p.handleAmountOp((*rewards.Pool).Withdraw)))
	sub.Path("/accounts/{address}/reward").
		Methods(http.MethodPost).
		Name("POST /pool/accounts/{address}/reward").
		HandlerFunc(utils.WrapHandlerFunc(p.handleAccountOp((*rewards.Pool).GetReward)))
	sub.Path("/accounts/{address}/exit").
		Methods(http.MethodPost).
		Name("POST /pool/accounts/{address}/exit").
		HandlerFunc(utils.WrapHandlerFunc(p.handleAccountOp((*rewards.Pool).Exit)))
}
