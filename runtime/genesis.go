// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/saitachain/staking/saita"
)

// Genesis is the initial state of a fresh runtime.
type Genesis struct {
	Balances   []GenesisBalance
	Validators []GenesisValidator
	Nominators []GenesisNominator
}

type GenesisBalance struct {
	Account  saita.Address
	Currency saita.CurrencyID
	Amount   *uint256.Int
}

type GenesisValidator struct {
	Account    saita.Address
	Commission uint32
	SelfBond   *uint256.Int
}

// GenesisNominator bonds from its genesis balance and nominates Targets.
type GenesisNominator struct {
	Account saita.Address
	Bond    *uint256.Int
	Targets []saita.Address
}

// InitGenesis builds and commits block 0. It returns false when the runtime
// already has committed blocks, leaving them untouched.
func (rt *Runtime) InitGenesis(gen *Genesis) (bool, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.initialized {
		logger.Info("genesis already applied", "pending", rt.number)
		return false, nil
	}
	if err := rt.buildGenesis(gen); err != nil {
		return false, errors.Wrap(err, "build genesis")
	}
	_, hash, err := rt.commit()
	if err != nil {
		return false, err
	}
	logger.Info("genesis committed", "hash", hash)
	return true, nil
}

func (rt *Runtime) buildGenesis(gen *Genesis) error {
	if err := rt.assets.RegisterCurrency(saita.SAITA, saita.NativeDecimals); err != nil {
		return err
	}
	if err := rt.assets.RegisterCurrency(saita.SSAITA, saita.DerivedDecimals); err != nil {
		return err
	}
	for _, b := range gen.Balances {
		if err := rt.assets.Mint(b.Currency, b.Account, b.Amount); err != nil {
			return errors.Wrapf(err, "balance of %v", b.Account)
		}
	}
	for _, v := range gen.Validators {
		if err := rt.staking.RegisterValidator(v.Account, v.Commission, v.SelfBond); err != nil {
			return errors.Wrapf(err, "validator %v", v.Account)
		}
	}
	for _, n := range gen.Nominators {
		if err := rt.staking.Bond(n.Account, n.Bond); err != nil {
			return errors.Wrapf(err, "bond of %v", n.Account)
		}
		if err := rt.staking.Nominate(n.Account, n.Targets); err != nil {
			return errors.Wrapf(err, "nominations of %v", n.Account)
		}
	}
	return rt.staking.ElectExposures(0)
}
