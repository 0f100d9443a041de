// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saitachain/staking/builtin/assets"
	"github.com/saitachain/staking/builtin/reverts"
	"github.com/saitachain/staking/builtin/staking"
	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/events"
	"github.com/saitachain/staking/lvldb"
	"github.com/saitachain/staking/saita"
	"github.com/saitachain/staking/state"
)

var (
	v1       = saita.BytesToAddress([]byte("v1"))
	v2       = saita.BytesToAddress([]byte("v2"))
	n1       = saita.BytesToAddress([]byte("n1"))
	n2       = saita.BytesToAddress([]byte("n2"))
	stranger = saita.BytesToAddress([]byte("stranger"))
	treasury = saita.TreasuryAccount
)

func u(v uint64) *uint256.Int { return uint256.NewInt(v) }

type observed struct {
	account saita.Address
	amount  *uint256.Int
}

type recordingObserver struct {
	payouts []observed
}

func (o *recordingObserver) OnPayout(account saita.Address, amount *uint256.Int) error {
	o.payouts = append(o.payouts, observed{account, amount})
	return nil
}

type testReward struct {
	*Reward
	state    *state.State
	assets   *assets.Assets
	staking  *staking.Staking
	recorder *events.Recorder
	observer *recordingObserver
}

func newTestReward(t *testing.T, policy Policy, treasuryFunds uint64) *testReward {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.New(db)

	a := assets.New(storage.NewContext(saita.Address{0xa5}, st), u(1))
	require.NoError(t, a.RegisterCurrency(saita.SAITA, saita.NativeDecimals))
	require.NoError(t, a.Mint(saita.SAITA, treasury, u(treasuryFunds)))

	s := staking.New(storage.NewContext(saita.Address{0x57}, st), a, staking.Params{BondingDuration: 3})
	require.NoError(t, s.RegisterValidator(v1, 10, u(400)))
	require.NoError(t, s.RegisterValidator(v2, 0, u(100)))

	rec := &events.Recorder{}
	r := New(storage.NewContext(saita.Address{0x4e}, st), Params{
		Treasury:                 treasury,
		Policy:                   policy,
		InitialBaseRewardPercent: saita.InitialBaseRewardPercent,
	}, s, a, rec)
	obs := &recordingObserver{}
	r.SetObserver(obs)
	return &testReward{Reward: r, state: st, assets: a, staking: s, recorder: rec, observer: obs}
}

// isolate discards the writes and events of fn when it fails.
func (r *testReward) isolate(fn func() error) error {
	checkpoint := r.state.NewCheckpoint()
	mark := r.recorder.Len()
	if err := fn(); err != nil {
		r.state.RevertTo(checkpoint)
		r.recorder.Truncate(mark)
		return err
	}
	return nil
}

func (r *testReward) balance(t *testing.T, who saita.Address) *uint256.Int {
	bal, err := r.assets.FreeBalance(saita.SAITA, who)
	require.NoError(t, err)
	return bal
}

func (r *testReward) eventCount(name string) int {
	n := 0
	for _, ev := range r.recorder.Since(0) {
		if ev.Name == name {
			n++
		}
	}
	return n
}

func exposure(total, own uint64, others ...staking.IndividualExposure) *staking.Exposure {
	return &staking.Exposure{Total: u(total), Own: u(own), Others: others}
}

func nominator(who saita.Address, value uint64) staking.IndividualExposure {
	return staking.IndividualExposure{Who: who, Value: u(value)}
}

func TestSplitReward(t *testing.T) {
	tests := []struct {
		name       string
		reward     uint64
		commission uint32
		exposure   *staking.Exposure
		validator  uint64
		nominators []NominatorShare
	}{
		{
			name:       "validator alone takes everything",
			reward:     100,
			commission: 10,
			exposure:   exposure(1000, 1000),
			validator:  100,
		},
		{
			name:       "commission then pro rata",
			reward:     100,
			commission: 10,
			exposure:   exposure(1000, 400, nominator(n1, 600)),
			validator:  46,
			nominators: []NominatorShare{{n1, u(54)}},
		},
		{
			name:       "nominators sorted, remainders dropped",
			reward:     10,
			commission: 0,
			exposure:   exposure(3, 1, nominator(n2, 1), nominator(n1, 1)),
			validator:  3,
			nominators: []NominatorShare{{n1, u(3)}, {n2, u(3)}},
		},
		{
			name:       "full commission",
			reward:     77,
			commission: 100,
			exposure:   exposure(10, 5, nominator(n1, 5)),
			validator:  77,
			nominators: []NominatorShare{{n1, u(0)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split, err := SplitReward(u(tt.reward), tt.commission, tt.exposure)
			require.NoError(t, err)
			assert.Equal(t, u(tt.validator), split.Validator)
			assert.Equal(t, len(tt.nominators), len(split.Nominators))
			for i, n := range tt.nominators {
				assert.Equal(t, n.Who, split.Nominators[i].Who)
				assert.Equal(t, n.Amount, split.Nominators[i].Amount)
			}
		})
	}
}

func TestSplitConservation(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 500 {
		var reward, own, stake uint32
		var commission uint8
		f.Fuzz(&reward)
		f.Fuzz(&own)
		f.Fuzz(&stake)
		f.Fuzz(&commission)
		if stake == 0 {
			stake = 1
		}
		total := uint64(own) + uint64(stake)
		split, err := SplitReward(u(uint64(reward)), uint32(commission%101), exposure(total, uint64(own), nominator(n1, uint64(stake))))
		require.NoError(t, err)

		paid := new(uint256.Int).Add(split.Validator, split.Nominators[0].Amount)
		require.False(t, paid.Gt(u(uint64(reward))), "never pays more than the era reward")
		assert.True(t, new(uint256.Int).Sub(u(uint64(reward)), paid).Cmp(u(2)) <= 0, "truncation loss is bounded")
	}
}

func TestAnnualizedPolicy(t *testing.T) {
	p := Annualized{TotalMinutesPerYear: saita.TotalMinutesPerYear, EraMinutes: saita.EraMinutes}
	assert.Equal(t, uint64(365), p.ErasPerYear())

	got, err := p.EraReward(u(4_562_500), 8)
	require.NoError(t, err)
	assert.Equal(t, u(1000), got)

	_, err = Annualized{TotalMinutesPerYear: 10}.EraReward(u(1), 8)
	assert.ErrorIs(t, err, reverts.ErrDivisionByZero)
}

func TestCalculateReward(t *testing.T) {
	r := newTestReward(t, Flat{PerEra: u(100)}, 1_000_000)

	require.NoError(t, r.staking.SetExposure(1, v1, exposure(1000, 400, nominator(n1, 600))))
	require.NoError(t, r.staking.SetExposure(1, v2, exposure(100, 100)))

	// no points, nothing to calculate
	require.NoError(t, r.CalculateReward(1))
	acc, err := r.ValidatorReward(v1)
	require.NoError(t, err)
	assert.True(t, acc.IsZero())

	require.NoError(t, r.staking.RewardByIDs(1, v1, 20))
	require.NoError(t, r.CalculateReward(1))

	acc, err = r.ValidatorReward(v1)
	require.NoError(t, err)
	assert.Equal(t, u(46), acc)
	acc, err = r.NominatorReward(v1, n1)
	require.NoError(t, err)
	assert.Equal(t, u(54), acc)
	acc, err = r.ValidatorReward(v2)
	require.NoError(t, err)
	assert.True(t, acc.IsZero(), "a validator without points earns nothing")

	// accruals grow across calculations
	require.NoError(t, r.staking.RewardByIDs(1, v2, 20))
	require.NoError(t, r.CalculateReward(1))
	acc, err = r.ValidatorReward(v1)
	require.NoError(t, err)
	assert.Equal(t, u(46+23), acc)
	acc, err = r.ValidatorReward(v2)
	require.NoError(t, err)
	assert.Equal(t, u(50), acc)

	nominators, err := r.RewardedNominators(v1)
	require.NoError(t, err)
	assert.Equal(t, []saita.Address{n1}, nominators)
}

func TestCalculateRewardAnnualized(t *testing.T) {
	r := newTestReward(t, nil, 1_000_000)

	require.NoError(t, r.staking.SetExposure(2, v2, exposure(4_562_500, 4_562_500)))
	require.NoError(t, r.staking.RewardByIDs(2, v2, 3))
	require.NoError(t, r.staking.RewardByIDs(2, v1, 1))
	require.NoError(t, r.CalculateReward(2))

	acc, err := r.ValidatorReward(v2)
	require.NoError(t, err)
	assert.Equal(t, u(750), acc)
	acc, err = r.ValidatorReward(v1)
	require.NoError(t, err)
	assert.True(t, acc.IsZero(), "a validator without exposure earns nothing")
}

func TestCalculateRewardSkipsInconsistentExposure(t *testing.T) {
	r := newTestReward(t, Flat{PerEra: u(100)}, 1_000_000)

	require.NoError(t, r.staking.SetExposure(1, v1, exposure(500, 400, nominator(n1, 600))))
	require.NoError(t, r.staking.SetExposure(1, v2, exposure(100, 100)))
	require.NoError(t, r.staking.RewardByIDs(1, v1, 1))
	require.NoError(t, r.staking.RewardByIDs(1, v2, 1))
	require.NoError(t, r.CalculateReward(1))

	acc, err := r.ValidatorReward(v1)
	require.NoError(t, err)
	assert.True(t, acc.IsZero())
	acc, err = r.ValidatorReward(v2)
	require.NoError(t, err)
	assert.Equal(t, u(50), acc)
}

func TestPayouts(t *testing.T) {
	r := newTestReward(t, Flat{PerEra: u(100)}, 1_000_000)
	require.NoError(t, r.staking.SetExposure(1, v1, exposure(1000, 400, nominator(n1, 600))))
	require.NoError(t, r.staking.RewardByIDs(1, v1, 20))
	require.NoError(t, r.CalculateReward(1))

	assert.ErrorIs(t, r.RequestPayout(stranger), reverts.ErrNoSuchValidator)
	require.NoError(t, r.RequestPayout(v1))
	assert.ErrorIs(t, r.RequestPayout(v1), reverts.ErrWaitTheEraToComplete)

	pending, err := r.PendingPayouts()
	require.NoError(t, err)
	assert.Equal(t, []saita.Address{v1}, pending)

	count, err := r.DistributePending(r.isolate)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, u(46), r.balance(t, v1))
	assert.Equal(t, u(54), r.balance(t, n1))
	assert.Equal(t, u(1_000_000-100), r.balance(t, treasury))

	beneficial, err := r.BeneficialReward(n1)
	require.NoError(t, err)
	assert.Equal(t, u(54), beneficial)

	pending, err = r.PendingPayouts()
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Equal(t, []observed{{v1, u(46)}, {n1, u(54)}}, r.observer.payouts)

	// a second claim before the next calculation pays nothing
	require.NoError(t, r.ClaimRewards(v1))
	assert.Equal(t, u(46), r.balance(t, v1))
	assert.Equal(t, u(54), r.balance(t, n1))
	assert.Equal(t, 2, r.eventCount("Distributed"))

	beneficial, err = r.BeneficialReward(v1)
	require.NoError(t, err)
	assert.Equal(t, u(46), beneficial)

	// the request is open again
	require.NoError(t, r.RequestPayout(v1))
}

func TestPayoutKeepsTreasuryAlive(t *testing.T) {
	r := newTestReward(t, Flat{PerEra: u(100)}, 100)
	require.NoError(t, r.staking.SetExposure(1, v2, exposure(100, 100)))
	require.NoError(t, r.staking.RewardByIDs(1, v2, 1))
	require.NoError(t, r.CalculateReward(1))

	assert.ErrorIs(t, r.ClaimRewards(v2), assets.ErrKeepAlive)
}

func TestDistributePendingKeepsFailedPayoutQueued(t *testing.T) {
	r := newTestReward(t, Flat{PerEra: u(100)}, 60)
	require.NoError(t, r.staking.SetExposure(1, v1, exposure(1000, 400, nominator(n1, 600))))
	require.NoError(t, r.staking.SetExposure(1, v2, exposure(100, 100)))
	require.NoError(t, r.staking.RewardByIDs(1, v1, 20))
	require.NoError(t, r.staking.RewardByIDs(1, v2, 20))
	require.NoError(t, r.CalculateReward(1))
	require.NoError(t, r.RequestPayout(v1))
	require.NoError(t, r.RequestPayout(v2))
	v2Balance := r.balance(t, v2)

	// v1 and n1 take 50 of 60, v2 would need 50 more
	count, err := r.DistributePending(r.isolate)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, u(23), r.balance(t, v1))
	assert.Equal(t, u(27), r.balance(t, n1))
	assert.Equal(t, v2Balance, r.balance(t, v2))
	assert.Equal(t, u(10), r.balance(t, treasury))

	acc, err := r.ValidatorReward(v2)
	require.NoError(t, err)
	assert.Equal(t, u(50), acc, "a failed payout keeps its accrual")
	pending, err := r.PendingPayouts()
	require.NoError(t, err)
	assert.Equal(t, []saita.Address{v2}, pending)
	beneficial, err := r.BeneficialReward(v2)
	require.NoError(t, err)
	assert.True(t, beneficial.IsZero())
	assert.Equal(t, 2, r.eventCount("Distributed"))
	assert.Equal(t, []observed{{v1, u(23)}, {n1, u(27)}}, r.observer.payouts)
}

func TestRewardPercent(t *testing.T) {
	r := newTestReward(t, nil, 0)

	base, err := r.BaseRewardPercent()
	require.NoError(t, err)
	assert.Equal(t, saita.InitialBaseRewardPercent, base)

	assert.ErrorIs(t, r.SetRewardPercent(101), reverts.ErrInvalidRewardPercent)
	require.NoError(t, r.PromoteRewardPercent())
	base, err = r.BaseRewardPercent()
	require.NoError(t, err)
	assert.Equal(t, saita.InitialBaseRewardPercent, base, "nothing to promote")

	require.NoError(t, r.SetRewardPercent(0))
	base, err = r.BaseRewardPercent()
	require.NoError(t, err)
	assert.Equal(t, saita.InitialBaseRewardPercent, base, "takes effect at promotion")

	require.NoError(t, r.PromoteRewardPercent())
	base, err = r.BaseRewardPercent()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), base)
	assert.Equal(t, 1, r.eventCount("RewardPercentSet"))
}

func TestCheckRewards(t *testing.T) {
	r := newTestReward(t, Flat{PerEra: u(100)}, 1_000_000)
	require.NoError(t, r.staking.SetExposure(1, v1, exposure(1000, 400, nominator(n1, 300), nominator(n2, 300))))
	require.NoError(t, r.staking.RewardByIDs(1, v1, 1))
	require.NoError(t, r.CalculateReward(1))

	require.NoError(t, r.CheckValidatorReward(v1))
	require.NoError(t, r.CheckNominatorReward(v1))

	evs := r.recorder.Since(0)
	var checked []*events.Event
	for _, ev := range evs {
		if ev.Name == "ValidatorRewardChecked" || ev.Name == "NominatorRewardChecked" {
			checked = append(checked, ev)
		}
	}
	require.Len(t, checked, 3)
	assert.Equal(t, u(46), checked[0].Amount)
	assert.Equal(t, n1, checked[1].Account)
	assert.Equal(t, u(27), checked[1].Amount)
	assert.Equal(t, n2, checked[2].Account)
}
