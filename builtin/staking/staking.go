// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking is the validator-set provider: eras, validators and their
// commission, per-era exposures and reward points, and the bonded ledger of
// every stash. Elections are out of scope; exposures for a new era are
// derived from the self bond of each validator and an even split of every
// nominator's active bond across its targets.
package staking

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/log"
	"github.com/saitachain/staking/saita"
)

var logger = log.WithContext("pkg", "staking")

var (
	ErrNotStash          = errors.New("not a stash")
	ErrAlreadyBonded     = errors.New("stash already bonded")
	ErrInsufficientFunds = errors.New("insufficient free balance to bond")
	ErrInsufficientBond  = errors.New("insufficient active bond")
	ErrNoUnlockChunk     = errors.New("no unlock chunk")
	ErrEmptyTargets      = errors.New("empty nomination targets")
	ErrTooManyTargets    = errors.New("too many nomination targets")
	ErrBadTarget         = errors.New("nomination target is not a validator")
	ErrValidatorExists   = errors.New("validator already registered")
	ErrNoSuchValidator   = errors.New("no such validator")
	ErrInvalidCommission = errors.New("commission above 100 percent")
)

var (
	slotCurrentEra  = storage.Slot("current-era")
	slotActiveEra   = storage.Slot("active-era")
	slotValidators  = storage.Slot("validators")
	slotValidator   = storage.Slot("validator")
	slotExposures   = storage.Slot("exposures")
	slotPoints      = storage.Slot("reward-points")
	slotLedgers     = storage.Slot("ledgers")
	slotNominations = storage.Slot("nominations")
	slotNominators  = storage.Slot("nominators")
)

type eraValidatorKey struct {
	era       saita.EraIndex
	validator saita.Address
}

func (k eraValidatorKey) Bytes() []byte {
	b := binary.BigEndian.AppendUint32(make([]byte, 0, 4+saita.AddressLength), uint32(k.era))
	return append(b, k.validator[:]...)
}

// Balances reads the free balance backing a bond.
type Balances interface {
	FreeBalance(currency saita.CurrencyID, account saita.Address) (*uint256.Int, error)
}

// Params are the staking constants.
type Params struct {
	BondingDuration  saita.EraIndex
	MinNominatorBond *uint256.Int
}

type Staking struct {
	currentEra  *storage.Value[saita.EraIndex]
	activeEra   *storage.Value[saita.EraIndex]
	validators  *storage.AddressSet
	validator   *storage.Mapping[saita.Address, *Validator]
	exposures   *storage.Mapping[eraValidatorKey, *Exposure]
	points      *storage.Mapping[storage.Uint32Key, *EraRewardPoints]
	ledgers     *storage.Mapping[saita.Address, *Ledger]
	nominations *storage.Mapping[saita.Address, []saita.Address]
	nominators  *storage.AddressSet
	balances    Balances
	params      Params
}

func New(ctx *storage.Context, balances Balances, params Params) *Staking {
	if params.MinNominatorBond == nil {
		params.MinNominatorBond = fixedpoint.Zero()
	}
	return &Staking{
		currentEra:  storage.NewValue[saita.EraIndex](ctx, slotCurrentEra),
		activeEra:   storage.NewValue[saita.EraIndex](ctx, slotActiveEra),
		validators:  storage.NewAddressSet(ctx, slotValidators),
		validator:   storage.NewMapping[saita.Address, *Validator](ctx, slotValidator),
		exposures:   storage.NewMapping[eraValidatorKey, *Exposure](ctx, slotExposures),
		points:      storage.NewMapping[storage.Uint32Key, *EraRewardPoints](ctx, slotPoints),
		ledgers:     storage.NewMapping[saita.Address, *Ledger](ctx, slotLedgers),
		nominations: storage.NewMapping[saita.Address, []saita.Address](ctx, slotNominations),
		nominators:  storage.NewAddressSet(ctx, slotNominators),
		balances:    balances,
		params:      params,
	}
}

func (s *Staking) CurrentEra() (saita.EraIndex, error) {
	return s.currentEra.Get()
}

func (s *Staking) ActiveEra() (saita.EraIndex, error) {
	return s.activeEra.Get()
}

func (s *Staking) BondingDuration() saita.EraIndex {
	return s.params.BondingDuration
}

func (s *Staking) MinNominatorBond() *uint256.Int {
	return new(uint256.Int).Set(s.params.MinNominatorBond)
}

// ElectableValidators returns registered validators in ascending order.
func (s *Staking) ElectableValidators() ([]saita.Address, error) {
	return s.validators.Members()
}

// IsValidator reports whether v is registered.
func (s *Staking) IsValidator(v saita.Address) (bool, error) {
	return s.validators.Contains(v)
}

// Commission returns the commission of validator in percent.
func (s *Staking) Commission(validator saita.Address) (uint32, error) {
	v, err := s.validator.Get(validator)
	if err != nil {
		return 0, err
	}
	return v.Commission, nil
}

// Exposure returns the stake backing validator in era.
func (s *Staking) Exposure(validator saita.Address, era saita.EraIndex) (*Exposure, error) {
	exp, err := s.exposures.Get(eraValidatorKey{era, validator})
	if err != nil {
		return nil, err
	}
	if exp.Total == nil {
		exp.Total = fixedpoint.Zero()
	}
	if exp.Own == nil {
		exp.Own = fixedpoint.Zero()
	}
	return exp, nil
}

// SetExposure overrides the exposure of validator in era.
func (s *Staking) SetExposure(era saita.EraIndex, validator saita.Address, exposure *Exposure) error {
	return s.exposures.Set(eraValidatorKey{era, validator}, exposure)
}

// RewardPoints returns the points earned in era.
func (s *Staking) RewardPoints(era saita.EraIndex) (*EraRewardPoints, error) {
	return s.points.Get(storage.Uint32Key(era))
}

// RewardByIDs credits era points to a validator, e.g. for authoring a block.
func (s *Staking) RewardByIDs(era saita.EraIndex, validator saita.Address, points uint32) error {
	p, err := s.points.Get(storage.Uint32Key(era))
	if err != nil {
		return err
	}
	p.add(validator, points)
	return s.points.Set(storage.Uint32Key(era), p)
}

// RegisterValidator adds a validator with its commission and self bond.
func (s *Staking) RegisterValidator(v saita.Address, commission uint32, selfBond *uint256.Int) error {
	if commission > 100 {
		return ErrInvalidCommission
	}
	added, err := s.validators.Add(v)
	if err != nil {
		return err
	}
	if !added {
		return ErrValidatorExists
	}
	logger.Info("validator registered", "validator", v, "commission", commission, "selfBond", selfBond)
	return s.validator.Set(v, &Validator{Commission: commission, SelfBond: selfBond})
}

// SetCommission updates the commission of a registered validator.
func (s *Staking) SetCommission(v saita.Address, commission uint32) error {
	if commission > 100 {
		return ErrInvalidCommission
	}
	ok, err := s.validators.Contains(v)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSuchValidator
	}
	val, err := s.validator.Get(v)
	if err != nil {
		return err
	}
	val.Commission = commission
	return s.validator.Set(v, val)
}
