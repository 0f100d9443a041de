// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package matching

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/reverts"
)

// ReservableAmount is a total of which a part is reserved.
// reserved <= total always holds.
type ReservableAmount struct {
	Total    *uint256.Int
	Reserved *uint256.Int
}

func newReservableAmount() ReservableAmount {
	return ReservableAmount{Total: fixedpoint.Zero(), Reserved: fixedpoint.Zero()}
}

func (r *ReservableAmount) normalize() {
	if r.Total == nil {
		r.Total = fixedpoint.Zero()
	}
	if r.Reserved == nil {
		r.Reserved = fixedpoint.Zero()
	}
}

// Free returns total - reserved.
func (r *ReservableAmount) Free() (*uint256.Int, error) {
	return fixedpoint.Sub(r.Total, r.Reserved)
}

func (r *ReservableAmount) add(amount *uint256.Int) error {
	total, err := fixedpoint.Add(r.Total, amount)
	if err != nil {
		return err
	}
	r.Total = total
	return nil
}

func (r *ReservableAmount) sub(amount *uint256.Int) error {
	free, err := r.Free()
	if err != nil {
		return err
	}
	if free.Lt(amount) {
		return reverts.ErrUnderflow
	}
	r.Total = new(uint256.Int).Sub(r.Total, amount)
	return nil
}

func (r *ReservableAmount) reserve(amount *uint256.Int) error {
	reserved, err := fixedpoint.Add(r.Reserved, amount)
	if err != nil {
		return err
	}
	if reserved.Gt(r.Total) {
		return reverts.ErrOverflow
	}
	r.Reserved = reserved
	return nil
}

// Ledger is the process-wide matching ledger. Every operation either applies
// fully or leaves the ledger untouched.
type Ledger struct {
	Stake   ReservableAmount
	Unstake ReservableAmount
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Stake: newReservableAmount(), Unstake: newReservableAmount()}
}

// AddStake records a stake into the pool.
func (l *Ledger) AddStake(amount *uint256.Int) error { return l.Stake.add(amount) }

// AddUnstake records an unstake request against the pool.
func (l *Ledger) AddUnstake(amount *uint256.Int) error { return l.Unstake.add(amount) }

// SubStake removes settled stake; it is a primitive for the era-rollover
// collaborator, applied through Service.Update.
func (l *Ledger) SubStake(amount *uint256.Int) error { return l.Stake.sub(amount) }

// SubUnstake removes settled unstake requests; it is a primitive for the
// era-rollover collaborator, applied through Service.Update.
func (l *Ledger) SubUnstake(amount *uint256.Int) error { return l.Unstake.sub(amount) }

// ReserveStake earmarks stake for matching; it is a primitive for the
// era-rollover collaborator, applied through Service.Update.
func (l *Ledger) ReserveStake(amount *uint256.Int) error { return l.Stake.reserve(amount) }

// ReserveUnstake earmarks unstake requests for matching; it is a primitive for
// the era-rollover collaborator, applied through Service.Update.
func (l *Ledger) ReserveUnstake(amount *uint256.Int) error { return l.Unstake.reserve(amount) }
