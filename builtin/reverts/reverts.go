// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// Kind classifies why a call was reverted.
type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindStateTiming
	KindArithmetic
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStateTiming:
		return "state-timing"
	case KindArithmetic:
		return "arithmetic"
	default:
		return "unknown"
	}
}

// ErrRevert aborts a call. All state written by the call is rolled back.
type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
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
	return errors.As(e, &ve)
}

// KindOf returns the kind of a revert error found in the chain of err, or zero.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return 0
}

// Validation
var (
	ErrStakeTooSmall         = New(KindValidation, "StakeTooSmall")
	ErrNotStaked             = New(KindValidation, "NotStaked")
	ErrNotBonded             = New(KindValidation, "NotBonded")
	ErrInsufficientBonded    = New(KindValidation, "InsufficientBonded")
	ErrCannotNominate        = New(KindValidation, "CannotNominate")
	ErrNoSuchValidator       = New(KindValidation, "NoSuchValidator")
	ErrInvalidLiquidCurrency = New(KindValidation, "InvalidLiquidCurrency")
	ErrInsufficientBalance   = New(KindValidation, "InsufficientBalance")
	ErrBadOrigin             = New(KindValidation, "BadOrigin")
	ErrInvalidRewardPercent  = New(KindValidation, "InvalidRewardPercent")
)

// State timing
var (
	ErrNoUnlockings                 = New(KindStateTiming, "NoUnlockings")
	ErrNothingToClaim               = New(KindStateTiming, "NothingToClaim")
	ErrWaitTheEraToComplete         = New(KindStateTiming, "WaitTheEraToComplete")
	ErrAccountNotInDerivativeReward = New(KindStateTiming, "AccountNotInDerivativeReward")
)

// Arithmetic
var (
	ErrOverflow       = New(KindArithmetic, "Overflow")
	ErrUnderflow      = New(KindArithmetic, "Underflow")
	ErrDivisionByZero = New(KindArithmetic, "DivisionByZero")
)
