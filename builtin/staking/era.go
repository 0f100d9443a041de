// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/holiman/uint256"
	"github.com/wk8/go-ordered-map/v2"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/saita"
)

// AdvanceEra starts the next era and builds its exposures.
func (s *Staking) AdvanceEra() (saita.EraIndex, error) {
	current, err := s.CurrentEra()
	if err != nil {
		return 0, err
	}
	next := current + 1
	if err := s.ElectExposures(next); err != nil {
		return 0, err
	}
	if err := s.currentEra.Set(next); err != nil {
		return 0, err
	}
	if err := s.activeEra.Set(next); err != nil {
		return 0, err
	}
	logger.Info("era advanced", "era", next)
	return next, nil
}

// ElectExposures writes the exposure of every validator for era: its self
// bond plus an even split of each nominator's active bond across the
// nominator's targets. The first target receives the division remainder.
// Exposures already stored for era are kept.
func (s *Staking) ElectExposures(era saita.EraIndex) error {
	validators, err := s.validators.Members()
	if err != nil {
		return err
	}
	// validator => exposure, in ascending validator order
	exposures := orderedmap.New[saita.Address, *Exposure]()
	for _, v := range validators {
		val, err := s.validator.Get(v)
		if err != nil {
			return err
		}
		own := fixedpoint.Zero()
		if val.SelfBond != nil {
			own.Set(val.SelfBond)
		}
		exposures.Set(v, &Exposure{Total: new(uint256.Int).Set(own), Own: own})
	}

	nominators, err := s.nominators.Members()
	if err != nil {
		return err
	}
	for _, n := range nominators {
		l, err := s.Ledger(n)
		if err != nil {
			return err
		}
		targets, err := s.nominations.Get(n)
		if err != nil {
			return err
		}
		if l.Active.IsZero() || len(targets) == 0 {
			continue
		}
		count := uint256.NewInt(uint64(len(targets)))
		share, rem := new(uint256.Int).DivMod(l.Active, count, new(uint256.Int))
		for i, t := range targets {
			exp, ok := exposures.Get(t)
			if !ok {
				continue
			}
			value := new(uint256.Int).Set(share)
			if i == 0 {
				value.Add(value, rem)
			}
			if value.IsZero() {
				continue
			}
			if exp.Total, err = fixedpoint.Add(exp.Total, value); err != nil {
				return err
			}
			exp.Others = append(exp.Others, IndividualExposure{Who: n, Value: value})
		}
	}

	for pair := exposures.Oldest(); pair != nil; pair = pair.Next() {
		// exposures set ahead of the era win
		exists, err := s.exposures.Exists(eraValidatorKey{era, pair.Key})
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.SetExposure(era, pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}
