// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts marks the errors returned when an operation is rejected by
// a business rule. A revert leaves no trace in state, unlike a storage or
// arithmetic fault which indicates a broken invariant.
package reverts

import (
	"errors"
)

type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Reason returns the revert message of err, or an empty string if err is not
// a revert.
func Reason(err error) string {
	var ve *ErrRevert
	if errors.As(err, &ve) && ve != nil {
		return ve.message
	}
	return ""
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	if errors.As(e, &ve) {
		return ve != nil
	}
	return false
}
