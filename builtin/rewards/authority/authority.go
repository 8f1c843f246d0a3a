// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package authority decides who may run the pool's administrative
// operations.
package authority

import (
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/thor"
)

var ErrUnauthorized = errors.New("authority: caller is not authorized")

type Gate interface {
	Authorize(caller thor.Address) error
}

// Owner admits a single address.
type Owner struct {
	owner thor.Address
}

func NewOwner(owner thor.Address) *Owner {
	return &Owner{owner: owner}
}

func (o *Owner) Address() thor.Address {
	return o.owner
}

func (o *Owner) Authorize(caller thor.Address) error {
	if caller != o.owner {
		return errors.Wrapf(ErrUnauthorized, "caller %v", caller)
	}
	return nil
}
