// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package liquidstaking implements the liquid staking pool. Depositors stake
// the native currency into the pool custody account and receive the liquid
// currency 1:1; unstaking burns it and schedules the deposit to be claimable
// after the bonding duration. The pool bonds and nominates through the
// staking collaborator under its own custody identity.
package liquidstaking

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/liquidstaking/bonds"
	"github.com/saitachain/staking/builtin/liquidstaking/matching"
	"github.com/saitachain/staking/builtin/liquidstaking/unlocking"
	"github.com/saitachain/staking/builtin/reverts"
	"github.com/saitachain/staking/builtin/staking"
	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/events"
	"github.com/saitachain/staking/log"
	"github.com/saitachain/staking/saita"
)

var logger = log.WithContext("pkg", "liquidstaking")

const module = "liquidstaking"

var (
	slotStaked        = storage.Slot("staked-accounts")
	slotStakes        = storage.Slot("account-stake")
	slotTotalStaked   = storage.Slot("total-staked")
	slotRewardQueue   = storage.Slot("derivative-reward-accounts")
	slotDistributable = storage.Slot("distributable-reward")
	slotDistributed   = storage.Slot("distributed-reward")
)

// Assets is the currency collaborator.
type Assets interface {
	Decimals(currency saita.CurrencyID) (uint8, bool, error)
	Mint(currency saita.CurrencyID, account saita.Address, amount *uint256.Int) error
	BurnBestEffort(currency saita.CurrencyID, account saita.Address, amount *uint256.Int) (*uint256.Int, error)
	Transfer(currency saita.CurrencyID, from, to saita.Address, amount *uint256.Int, keepAlive bool) error
}

// Staking is the validator-set collaborator the pool bonds and nominates through.
type Staking interface {
	CurrentEra() (saita.EraIndex, error)
	BondingDuration() saita.EraIndex
	MinNominatorBond() *uint256.Int
	IsValidator(v saita.Address) (bool, error)
	Ledger(stash saita.Address) (*staking.Ledger, error)
	Bond(stash saita.Address, value *uint256.Int) error
	BondExtra(stash saita.Address, value *uint256.Int) error
	Unbond(stash saita.Address, value *uint256.Int) error
	Rebond(stash saita.Address, value *uint256.Int) error
	WithdrawUnbonded(stash saita.Address) (*uint256.Int, error)
	Nominate(stash saita.Address, targets []saita.Address) error
	Nominations(stash saita.Address) ([]saita.Address, error)
}

// Payouts queues validator payouts in the reward module.
type Payouts interface {
	IsPending(validator saita.Address) (bool, error)
	RequestPayout(validator saita.Address) error
}

// Params configures the pool.
type Params struct {
	// Account is the custody account of the pool.
	Account  saita.Address
	MinStake *uint256.Int
	// DustTolerance is the largest burn shortfall accepted by Unstake.
	DustTolerance *uint256.Int
}

type LiquidStaking struct {
	params  Params
	assets  Assets
	staking Staking
	payouts Payouts
	emitter events.Emitter

	matchingService *matching.Service
	unlockings      *unlocking.Repository
	bonds           *bonds.Ledger

	staked        *storage.AddressSet
	stakes        *storage.Mapping[saita.Address, *uint256.Int]
	totalStaked   *storage.Value[*uint256.Int]
	rewardQueue   *storage.Value[[]saita.Address]
	distributable *storage.Value[*uint256.Int]
	distributed   *storage.Value[*uint256.Int]
}

// New creates the pool over sctx.
func New(sctx *storage.Context, params Params, assets Assets, staking Staking, payouts Payouts, emitter events.Emitter) *LiquidStaking {
	if params.MinStake == nil {
		params.MinStake = fixedpoint.Zero()
	}
	if params.DustTolerance == nil {
		params.DustTolerance = fixedpoint.Zero()
	}
	if emitter == nil {
		emitter = events.Discard
	}
	return &LiquidStaking{
		params:  params,
		assets:  assets,
		staking: staking,
		payouts: payouts,
		emitter: emitter,

		matchingService: matching.New(sctx),
		unlockings:      unlocking.New(sctx),
		bonds:           bonds.New(sctx),

		staked:        storage.NewAddressSet(sctx, slotStaked),
		stakes:        storage.NewMapping[saita.Address, *uint256.Int](sctx, slotStakes),
		totalStaked:   storage.NewValue[*uint256.Int](sctx, slotTotalStaked),
		rewardQueue:   storage.NewValue[[]saita.Address](sctx, slotRewardQueue),
		distributable: storage.NewValue[*uint256.Int](sctx, slotDistributable),
		distributed:   storage.NewValue[*uint256.Int](sctx, slotDistributed),
	}
}

//
// Getters - no state change
//

// Account returns the pool custody account.
func (l *LiquidStaking) Account() saita.Address {
	return l.params.Account
}

// MatchingPool returns the aggregate stake and unstake ledger.
func (l *LiquidStaking) MatchingPool() (*matching.Ledger, error) {
	return l.matchingService.Get()
}

// StakeOf returns the stake record of who, zero when absent.
func (l *LiquidStaking) StakeOf(who saita.Address) (*uint256.Int, error) {
	return l.stakes.Get(who)
}

// TotalStaked sums the stake records of every account.
func (l *LiquidStaking) TotalStaked() (*uint256.Int, error) {
	return l.totalStaked.Get()
}

// StakedAccounts lists the accounts holding a stake record, ascending.
func (l *LiquidStaking) StakedAccounts() ([]saita.Address, error) {
	return l.staked.Members()
}

func (l *LiquidStaking) IsStaked(who saita.Address) (bool, error) {
	return l.staked.Contains(who)
}

// Unlockings returns the unlock chunks of who.
func (l *LiquidStaking) Unlockings(who saita.Address) (unlocking.Chunks, error) {
	chunks, _, err := l.unlockings.Get(who)
	return chunks, err
}

// Bonded returns the amount who bonded through the pool.
func (l *LiquidStaking) Bonded(who saita.Address) (*uint256.Int, error) {
	return l.bonds.Get(who)
}

// DerivativeRewardAccounts returns the accounts queued for a derivative reward, in request order.
func (l *LiquidStaking) DerivativeRewardAccounts() ([]saita.Address, error) {
	return l.rewardQueue.Get()
}

// DistributableReward returns the reward paid to the pool in the current round.
func (l *LiquidStaking) DistributableReward() (*uint256.Int, error) {
	return l.distributable.Get()
}

//
// Internal helpers
//

func (l *LiquidStaking) emit(name string, era saita.EraIndex, who saita.Address, amount *uint256.Int) {
	l.emitter.Emit(&events.Event{
		Module:  module,
		Name:    name,
		Era:     era,
		Account: who,
		Amount:  amount,
	})
}

func (l *LiquidStaking) requireStaked(who saita.Address) error {
	ok, err := l.staked.Contains(who)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNotStaked
	}
	return nil
}

// creditStake adds amount to the record of who and to the aggregate.
func (l *LiquidStaking) creditStake(who saita.Address, amount *uint256.Int) error {
	record, err := l.stakes.Get(who)
	if err != nil {
		return err
	}
	if record, err = fixedpoint.Add(record, amount); err != nil {
		return err
	}
	total, err := l.totalStaked.Get()
	if err != nil {
		return err
	}
	if total, err = fixedpoint.Add(total, amount); err != nil {
		return err
	}
	if _, err := l.staked.Add(who); err != nil {
		return err
	}
	if err := l.stakes.Set(who, record); err != nil {
		return err
	}
	return l.totalStaked.Set(total)
}

// debitStake takes amount from the record of who and from the aggregate. The
// record and the staked set membership go away at zero.
func (l *LiquidStaking) debitStake(who saita.Address, amount *uint256.Int) error {
	record, err := l.stakes.Get(who)
	if err != nil {
		return err
	}
	if record.Lt(amount) {
		return reverts.ErrInsufficientBalance
	}
	record = new(uint256.Int).Sub(record, amount)
	total, err := l.totalStaked.Get()
	if err != nil {
		return err
	}
	if total, err = fixedpoint.Sub(total, amount); err != nil {
		return err
	}
	if err := l.totalStaked.Set(total); err != nil {
		return err
	}
	if record.IsZero() {
		l.stakes.Delete(who)
		_, err := l.staked.Remove(who)
		return err
	}
	return l.stakes.Set(who, record)
}
