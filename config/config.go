// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package config loads the node configuration: runtime parameters, module
// accounts and the genesis allocation.
package config

import (
	"os"
	"slices"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/reward"
	"github.com/saitachain/staking/runtime"
	"github.com/saitachain/staking/saita"
)

const (
	PolicyAnnualized = "annualized"
	PolicyFlat       = "flat"
)

type Config struct {
	Params   Params   `yaml:"params"`
	Accounts Accounts `yaml:"accounts"`
	Genesis  Genesis  `yaml:"genesis"`
}

// Params are the runtime parameters. Amounts are in whole SAITA.
type Params struct {
	MinStake            Amount `yaml:"minStake"`
	DustTolerance       Amount `yaml:"dustTolerance"`
	MinNominatorBond    Amount `yaml:"minNominatorBond"`
	ExistentialDeposit  Amount `yaml:"existentialDeposit"`
	BondingDuration     uint32 `yaml:"bondingDuration"`
	RewardPolicy        string `yaml:"rewardPolicy"`
	TotalMinutesPerYear uint64 `yaml:"totalMinutesPerYear"`
	EraMinutes          uint64 `yaml:"eraMinutes"`
	FlatEraReward       Amount `yaml:"flatEraReward"`
	BaseRewardPercent   uint32 `yaml:"baseRewardPercent"`
	PointsPerBlock      uint32 `yaml:"pointsPerBlock"`
}

type Accounts struct {
	Treasury saita.Address `yaml:"treasury"`
	// PoolID is the module id the pool custody account is derived from.
	PoolID string `yaml:"poolId"`
}

type Genesis struct {
	Balances   []Balance   `yaml:"balances"`
	Validators []Validator `yaml:"validators"`
}

type Balance struct {
	Address  saita.Address `yaml:"address"`
	Currency string        `yaml:"currency"`
	Amount   Amount        `yaml:"amount"`
}

type Validator struct {
	Address    saita.Address `yaml:"address"`
	Commission uint32        `yaml:"commission"`
	SelfBond   Amount        `yaml:"selfBond"`
	Nominators []Nominator   `yaml:"nominators"`
}

type Nominator struct {
	Address saita.Address `yaml:"address"`
	Bond    Amount        `yaml:"bond"`
}

// Default returns the dev configuration.
func Default() *Config {
	dev := DevAccounts()
	cfg := &Config{
		Params: Params{
			MinStake:            MustAmount("1"),
			DustTolerance:       MustAmount("0"),
			MinNominatorBond:    MustAmount("10"),
			ExistentialDeposit:  MustAmount("0.000001"),
			BondingDuration:     uint32(saita.BondingDuration),
			RewardPolicy:        PolicyAnnualized,
			TotalMinutesPerYear: saita.TotalMinutesPerYear,
			EraMinutes:          saita.EraMinutes,
			FlatEraReward:       MustAmount("0"),
			BaseRewardPercent:   saita.InitialBaseRewardPercent,
			PointsPerBlock:      20,
		},
		Accounts: Accounts{
			Treasury: saita.TreasuryAccount,
			PoolID:   saita.LiquidStakingModuleID,
		},
	}
	cfg.Genesis.Balances = append(cfg.Genesis.Balances, Balance{saita.TreasuryAccount, saita.SAITA.String(), MustAmount("100000000")})
	for _, a := range dev {
		cfg.Genesis.Balances = append(cfg.Genesis.Balances, Balance{a.Address, saita.SAITA.String(), MustAmount("1000000")})
	}
	cfg.Genesis.Validators = []Validator{
		{
			Address:    dev[0].Address,
			Commission: 10,
			SelfBond:   MustAmount("100000"),
			Nominators: []Nominator{{dev[2].Address, MustAmount("20000")}, {dev[3].Address, MustAmount("10000")}},
		},
		{
			Address:    dev[1].Address,
			Commission: 5,
			SelfBond:   MustAmount("50000"),
			Nominators: []Nominator{{dev[3].Address, MustAmount("10000")}},
		},
	}
	return cfg
}

// Load reads a YAML file over the dev configuration and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML over the dev configuration and validates it. Lists in
// data replace the default lists.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the runtime cannot run with.
func (c *Config) Validate() error {
	p := &c.Params
	if p.BaseRewardPercent > 100 {
		return errors.Errorf("baseRewardPercent %d above 100", p.BaseRewardPercent)
	}
	switch p.RewardPolicy {
	case PolicyAnnualized:
		if p.EraMinutes == 0 || p.TotalMinutesPerYear < p.EraMinutes {
			return errors.Errorf("eraMinutes must be in (0, totalMinutesPerYear], got %d", p.EraMinutes)
		}
	case PolicyFlat:
	default:
		return errors.Errorf("unknown rewardPolicy %q", p.RewardPolicy)
	}
	if p.PointsPerBlock == 0 {
		return errors.New("pointsPerBlock must be positive")
	}
	if c.Accounts.Treasury.IsZero() {
		return errors.New("treasury account not set")
	}
	if c.Accounts.PoolID == "" {
		return errors.New("poolId not set")
	}
	if _, err := c.RuntimeParams(); err != nil {
		return err
	}

	var validators []saita.Address
	for _, v := range c.Genesis.Validators {
		if v.Commission > 100 {
			return errors.Errorf("validator %v: commission %d above 100", v.Address, v.Commission)
		}
		if slices.Contains(validators, v.Address) {
			return errors.Errorf("validator %v listed twice", v.Address)
		}
		validators = append(validators, v.Address)
	}
	if _, err := c.RuntimeGenesis(); err != nil {
		return err
	}
	return nil
}

// PoolAccount returns the custody account of the liquid staking pool.
func (c *Config) PoolAccount() saita.Address {
	return saita.ModuleAccount(c.Accounts.PoolID)
}

// RuntimeParams converts the parameters to base units.
func (c *Config) RuntimeParams() (runtime.Params, error) {
	p := &c.Params
	params := runtime.Params{
		BondingDuration:          saita.EraIndex(p.BondingDuration),
		InitialBaseRewardPercent: p.BaseRewardPercent,
		PointsPerBlock:           p.PointsPerBlock,
		PoolAccount:              c.PoolAccount(),
		Treasury:                 c.Accounts.Treasury,
	}
	amounts := []struct {
		name   string
		amount Amount
		dst    **uint256.Int
	}{
		{"minStake", p.MinStake, &params.MinStake},
		{"dustTolerance", p.DustTolerance, &params.DustTolerance},
		{"minNominatorBond", p.MinNominatorBond, &params.MinNominatorBond},
		{"existentialDeposit", p.ExistentialDeposit, &params.ExistentialDeposit},
	}
	for _, a := range amounts {
		v, err := a.amount.Units(saita.NativeDecimals)
		if err != nil {
			return runtime.Params{}, errors.Wrap(err, a.name)
		}
		*a.dst = v
	}

	switch p.RewardPolicy {
	case PolicyFlat:
		perEra, err := p.FlatEraReward.Units(saita.NativeDecimals)
		if err != nil {
			return runtime.Params{}, errors.Wrap(err, "flatEraReward")
		}
		params.Policy = reward.Flat{PerEra: perEra}
	default:
		params.Policy = reward.Annualized{
			TotalMinutesPerYear: p.TotalMinutesPerYear,
			EraMinutes:          p.EraMinutes,
		}
	}
	return params, nil
}

// RuntimeGenesis converts the genesis allocation. Nominators listed under
// several validators bond the sum of their entries and nominate all of them.
func (c *Config) RuntimeGenesis() (*runtime.Genesis, error) {
	gen := &runtime.Genesis{}
	for _, b := range c.Genesis.Balances {
		currency, err := parseCurrency(b.Currency)
		if err != nil {
			return nil, errors.Wrapf(err, "balance of %v", b.Address)
		}
		amount, err := b.Amount.Units(saita.NativeDecimals)
		if err != nil {
			return nil, errors.Wrapf(err, "balance of %v", b.Address)
		}
		gen.Balances = append(gen.Balances, runtime.GenesisBalance{Account: b.Address, Currency: currency, Amount: amount})
	}

	nominators := make(map[saita.Address]int) // index in gen.Nominators
	for _, v := range c.Genesis.Validators {
		selfBond, err := v.SelfBond.Units(saita.NativeDecimals)
		if err != nil {
			return nil, errors.Wrapf(err, "self bond of %v", v.Address)
		}
		gen.Validators = append(gen.Validators, runtime.GenesisValidator{
			Account:    v.Address,
			Commission: v.Commission,
			SelfBond:   selfBond,
		})
		for _, n := range v.Nominators {
			bond, err := n.Bond.Units(saita.NativeDecimals)
			if err != nil {
				return nil, errors.Wrapf(err, "bond of %v", n.Address)
			}
			i, ok := nominators[n.Address]
			if !ok {
				i = len(gen.Nominators)
				nominators[n.Address] = i
				gen.Nominators = append(gen.Nominators, runtime.GenesisNominator{Account: n.Address, Bond: bond})
			} else if gen.Nominators[i].Bond, err = fixedpoint.Add(gen.Nominators[i].Bond, bond); err != nil {
				return nil, errors.Wrapf(err, "bond of %v", n.Address)
			}
			gen.Nominators[i].Targets = append(gen.Nominators[i].Targets, v.Address)
		}
	}
	return gen, nil
}

func parseCurrency(s string) (saita.CurrencyID, error) {
	for _, c := range []saita.CurrencyID{saita.SAITA, saita.SSAITA} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, errors.Errorf("unknown currency %q", s)
}
