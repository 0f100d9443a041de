// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual stores rewards credited by the era calculation and not yet paid.
package accrual

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/saita"
)

var (
	slotValidatorRewards = storage.Slot("validator-rewards")
	slotNominatorRewards = storage.Slot("nominator-rewards")
	slotNominators       = storage.Slot("rewarded-nominators")
)

type Service struct {
	validators *storage.Mapping[saita.Address, *uint256.Int]
	nominators *storage.Mapping[storage.PairKey, *uint256.Int]
	// validator => nominators holding an accrual under it, ascending
	nominatorsOf *storage.Mapping[saita.Address, []saita.Address]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		validators:   storage.NewMapping[saita.Address, *uint256.Int](sctx, slotValidatorRewards),
		nominators:   storage.NewMapping[storage.PairKey, *uint256.Int](sctx, slotNominatorRewards),
		nominatorsOf: storage.NewMapping[saita.Address, []saita.Address](sctx, slotNominators),
	}
}

// Validator returns the unpaid reward of validator.
func (s *Service) Validator(validator saita.Address) (*uint256.Int, error) {
	return s.validators.Get(validator)
}

// Nominator returns the unpaid reward of nominator earned behind validator.
func (s *Service) Nominator(validator, nominator saita.Address) (*uint256.Int, error) {
	return s.nominators.Get(storage.PairKey{First: validator, Second: nominator})
}

// Nominators lists the nominators with an accrual under validator.
func (s *Service) Nominators(validator saita.Address) ([]saita.Address, error) {
	return s.nominatorsOf.Get(validator)
}

// CreditValidator adds amount to the accrual of validator.
func (s *Service) CreditValidator(validator saita.Address, amount *uint256.Int) error {
	current, err := s.validators.Get(validator)
	if err != nil {
		return err
	}
	sum, err := fixedpoint.Add(current, amount)
	if err != nil {
		return err
	}
	return s.validators.Set(validator, sum)
}

// CreditNominator adds amount to the accrual of nominator behind validator.
func (s *Service) CreditNominator(validator, nominator saita.Address, amount *uint256.Int) error {
	key := storage.PairKey{First: validator, Second: nominator}
	current, err := s.nominators.Get(key)
	if err != nil {
		return err
	}
	sum, err := fixedpoint.Add(current, amount)
	if err != nil {
		return err
	}
	list, err := s.nominatorsOf.Get(validator)
	if err != nil {
		return err
	}
	if list, added := saita.InsertAddress(list, nominator); added {
		if err := s.nominatorsOf.Set(validator, list); err != nil {
			return err
		}
	}
	return s.nominators.Set(key, sum)
}

// TakeValidator zeroes the accrual of validator and returns it.
func (s *Service) TakeValidator(validator saita.Address) (*uint256.Int, error) {
	amount, err := s.validators.Get(validator)
	if err != nil {
		return nil, err
	}
	s.validators.Delete(validator)
	return amount, nil
}

// TakeNominator zeroes the accrual of nominator behind validator and returns it.
func (s *Service) TakeNominator(validator, nominator saita.Address) (*uint256.Int, error) {
	key := storage.PairKey{First: validator, Second: nominator}
	amount, err := s.nominators.Get(key)
	if err != nil {
		return nil, err
	}
	s.nominators.Delete(key)
	return amount, nil
}

// ForgetNominators drops the nominator list of validator once every entry was taken.
func (s *Service) ForgetNominators(validator saita.Address) {
	s.nominatorsOf.Delete(validator)
}
