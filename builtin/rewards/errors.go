// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/builtin/reverts"
)

var (
	ErrZeroAmount              = reverts.New("amount must be positive")
	ErrPeriodInPast            = reverts.New("period must end in the future")
	ErrInsufficientRewardFunds = reverts.New("reward balance does not cover allocation")
	ErrUnsupportedRecovery     = reverts.New("cannot recover the staking or reward asset")
	ErrRecoveryUnavailable     = reverts.New("pool has no recoverer")
	ErrReentrantCall           = reverts.New("reentrant call")
	ErrTransferFailed          = reverts.New("transfer failed")

	ErrNotInitialized     = errors.New("pool not initialized")
	ErrAlreadyInitialized = errors.New("pool already initialized")
	ErrConfigMismatch     = errors.New("pool config does not match stored state")
	ErrCustodyDiverged    = errors.New("pool custody diverged from its accounts")
)

// TransferError reports a failed call to a transfer collaborator. It matches
// both ErrTransferFailed and the collaborator's own error.
type TransferError struct {
	Op  string
	Err error
}

func (e *TransferError) Error() string {
	return "transfer failed: " + e.Op + ": " + e.Err.Error()
}

func (e *TransferError) Unwrap() []error {
	return []error{ErrTransferFailed, e.Err}
}

func outcome(err error) string {
	if reverts.IsRevertErr(err) {
		return "revert"
	}
	return "error"
}
