// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/saitachain/staking/builtin/reward"
	"github.com/saitachain/staking/saita"
)

func pow10(n uint64) *uint256.Int {
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(n))
}

func TestAmountUnits(t *testing.T) {
	tests := []struct {
		in       string
		decimals uint8
		want     *uint256.Int
		wantErr  bool
	}{
		{"1", 18, pow10(18), false},
		{"12.5", 2, uint256.NewInt(1250), false},
		{"0", 18, uint256.NewInt(0), false},
		{"0.001", 2, nil, true},
		{"-1", 18, nil, true},
		{"1e30", 18, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := MustAmount(tt.in).Units(tt.decimals)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatUnits(t *testing.T) {
	assert.Equal(t, "12.5", FormatUnits(uint256.NewInt(1250), 2))
	assert.Equal(t, "1", FormatUnits(pow10(18), 18))
	assert.Equal(t, "0", FormatUnits(nil, 18))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	params, err := cfg.RuntimeParams()
	require.NoError(t, err)
	assert.Equal(t, pow10(18), params.MinStake)
	assert.Equal(t, saita.LiquidStakingAccount, params.PoolAccount)
	assert.Equal(t, reward.Annualized{TotalMinutesPerYear: 525600, EraMinutes: 1440}, params.Policy)

	gen, err := cfg.RuntimeGenesis()
	require.NoError(t, err)
	assert.Len(t, gen.Validators, 2)
	require.Len(t, gen.Nominators, 2)

	dev := DevAccounts()
	shared := gen.Nominators[1]
	assert.Equal(t, dev[3].Address, shared.Account)
	assert.Equal(t, []saita.Address{dev[0].Address, dev[1].Address}, shared.Targets)
	assert.Equal(t, new(uint256.Int).Mul(uint256.NewInt(20000), pow10(18)), shared.Bond)
}

func TestParse(t *testing.T) {
	data := `
params:
  minStake: "2.5"
  rewardPolicy: flat
  flatEraReward: "100"
  bondingDuration: 3
genesis:
  balances:
    - address: "0x0000000000000000000000000000000000000a11"
      currency: SAITA
      amount: "1000"
  validators:
    - address: "0x00000000000000000000000000000000000000b1"
      commission: 7
      selfBond: "400"
`
	cfg, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, uint32(20), cfg.Params.PointsPerBlock, "omitted fields keep the defaults")

	params, err := cfg.RuntimeParams()
	require.NoError(t, err)
	assert.Equal(t, new(uint256.Int).Mul(uint256.NewInt(25), pow10(17)), params.MinStake)
	assert.Equal(t, saita.EraIndex(3), params.BondingDuration)
	assert.Equal(t, reward.Flat{PerEra: new(uint256.Int).Mul(uint256.NewInt(100), pow10(18))}, params.Policy)

	gen, err := cfg.RuntimeGenesis()
	require.NoError(t, err)
	require.Len(t, gen.Balances, 1)
	assert.Equal(t, saita.BytesToAddress([]byte{0x0a, 0x11}), gen.Balances[0].Account)
	require.Len(t, gen.Validators, 1)
	assert.Equal(t, uint32(7), gen.Validators[0].Commission)
	assert.Empty(t, gen.Nominators)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"percent", func(c *Config) { c.Params.BaseRewardPercent = 101 }},
		{"policy", func(c *Config) { c.Params.RewardPolicy = "linear" }},
		{"era minutes", func(c *Config) { c.Params.EraMinutes = 0 }},
		{"points", func(c *Config) { c.Params.PointsPerBlock = 0 }},
		{"treasury", func(c *Config) { c.Accounts.Treasury = saita.Address{} }},
		{"pool", func(c *Config) { c.Accounts.PoolID = "" }},
		{"negative", func(c *Config) { c.Params.MinStake = MustAmount("-1") }},
		{"commission", func(c *Config) { c.Genesis.Validators[0].Commission = 101 }},
		{"duplicate validator", func(c *Config) {
			c.Genesis.Validators = append(c.Genesis.Validators, c.Genesis.Validators[0])
		}},
		{"currency", func(c *Config) { c.Genesis.Balances[0].Currency = "DOT" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad(t *testing.T) {
	data, err := yaml.Marshal(Default())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "saita.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Genesis.Validators[0].Address, cfg.Genesis.Validators[0].Address)
	assert.True(t, Default().Params.ExistentialDeposit.Equal(cfg.Params.ExistentialDeposit.Decimal))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("params:\n  minStake: abc\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
