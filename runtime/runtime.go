// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime applies calls to the native modules one at a time and
// persists their effects block by block.
package runtime

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/saitachain/staking/builtin"
	"github.com/saitachain/staking/builtin/assets"
	"github.com/saitachain/staking/builtin/liquidstaking"
	"github.com/saitachain/staking/builtin/reverts"
	"github.com/saitachain/staking/builtin/reward"
	"github.com/saitachain/staking/builtin/staking"
	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/eventdb"
	"github.com/saitachain/staking/events"
	"github.com/saitachain/staking/kv"
	"github.com/saitachain/staking/log"
	"github.com/saitachain/staking/saita"
	"github.com/saitachain/staking/state"
)

var logger = log.WithContext("pkg", "runtime")

var (
	slotBestBlock     = storage.Slot("best-block")
	slotAuthoredBlock = storage.Slot("authored-block")
)

// Services are the native modules of a runtime.
type Services struct {
	Assets        *assets.Assets
	Staking       *staking.Staking
	Reward        *reward.Reward
	LiquidStaking *liquidstaking.LiquidStaking
}

// Runtime owns the state and serializes every access to it.
type Runtime struct {
	mu       sync.Mutex
	params   Params
	state    *state.State
	recorder *events.Recorder
	eventDB  *eventdb.EventDB

	assets  *assets.Assets
	staking *staking.Staking
	reward  *reward.Reward
	liquid  *liquidstaking.LiquidStaking

	best        *storage.Value[uint32]
	authored    *storage.Value[uint32] // pending block number + 1 once its author is credited
	number      uint32                 // pending block
	initialized bool
	ticker      ticker
}

// New creates a runtime over store. eventDB may be nil.
func New(store kv.Store, eventDB *eventdb.EventDB, params Params) (*Runtime, error) {
	st := state.New(store)
	rec := &events.Recorder{}

	a := assets.New(builtin.Assets.WithState(st), params.ExistentialDeposit)
	s := staking.New(builtin.Staking.WithState(st), a, staking.Params{
		BondingDuration:  params.BondingDuration,
		MinNominatorBond: params.MinNominatorBond,
	})
	r := reward.New(builtin.Reward.WithState(st), reward.Params{
		Treasury:                 params.Treasury,
		Policy:                   params.Policy,
		InitialBaseRewardPercent: params.InitialBaseRewardPercent,
	}, s, a, rec)
	l := liquidstaking.New(builtin.LiquidStaking.WithState(st), liquidstaking.Params{
		Account:       params.PoolAccount,
		MinStake:      params.MinStake,
		DustTolerance: params.DustTolerance,
	}, a, s, r, rec)
	r.SetObserver(l)

	rt := &Runtime{
		params:   params,
		state:    st,
		recorder: rec,
		eventDB:  eventDB,
		assets:   a,
		staking:  s,
		reward:   r,
		liquid:   l,
		best:     storage.NewValue[uint32](builtin.Runtime.WithState(st), slotBestBlock),
		authored: storage.NewValue[uint32](builtin.Runtime.WithState(st), slotAuthoredBlock),
	}

	exists, err := rt.best.Exists()
	if err != nil {
		return nil, errors.Wrap(err, "load best block")
	}
	if exists {
		best, err := rt.best.Get()
		if err != nil {
			return nil, errors.Wrap(err, "load best block")
		}
		rt.number = best + 1
		rt.initialized = true
	}
	return rt, nil
}

func (rt *Runtime) Params() Params {
	return rt.params
}

// BlockNumber returns the number of the pending block.
func (rt *Runtime) BlockNumber() uint32 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.number
}

// Initialized reports whether genesis was committed.
func (rt *Runtime) Initialized() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.initialized
}

func (rt *Runtime) EventDB() *eventdb.EventDB {
	return rt.eventDB
}

// Read runs fn with exclusive access to the services. fn must not mutate them.
func (rt *Runtime) Read(fn func(s *Services) error) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return fn(&Services{
		Assets:        rt.assets,
		Staking:       rt.staking,
		Reward:        rt.reward,
		LiquidStaking: rt.liquid,
	})
}

// Execute applies one call atomically. Any error reverts the writes and
// events of the call and is reported in the receipt.
func (rt *Runtime) Execute(call *Call) *Receipt {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	receipt := &Receipt{Method: call.Method}
	checkpoint := rt.state.NewCheckpoint()
	mark := rt.recorder.Len()

	err := rt.dispatch(call)
	if err != nil {
		rt.state.RevertTo(checkpoint)
		rt.recorder.Truncate(mark)
		receipt.Reverted = true
		receipt.Error = err.Error()
		receipt.Err = err
		if reverts.IsRevertErr(err) {
			receipt.Kind = reverts.KindOf(err).String()
		}
		logger.Debug("call reverted", "method", call.Method, "origin", call.Origin.Signer, "err", err)
		metricCalls().AddWithLabel(1, map[string]string{"method": call.Method, "status": "reverted"})
		return receipt
	}
	receipt.Events = rt.recorder.Since(mark)
	metricCalls().AddWithLabel(1, map[string]string{"method": call.Method, "status": "ok"})
	return receipt
}

func (rt *Runtime) dispatch(call *Call) (err error) {
	m, ok := methods[call.Method]
	if !ok {
		return errors.Wrap(errUnknownMethod, call.Method)
	}
	if m.root != call.Origin.Root {
		return reverts.ErrBadOrigin
	}
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("runtime: %v", e)
		}
	}()
	return m.run(rt, call.Origin.Signer, &call.Args)
}

// ProduceBlock credits the author of the pending block with era points.
// Authors rotate over the electable validators by block number. A block is
// credited once, however many times it is produced before commit.
func (rt *Runtime) ProduceBlock() (saita.Address, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	validators, err := rt.staking.ElectableValidators()
	if err != nil {
		return saita.Address{}, err
	}
	if len(validators) == 0 {
		return saita.Address{}, nil
	}
	era, err := rt.staking.CurrentEra()
	if err != nil {
		return saita.Address{}, err
	}
	author := validators[int(rt.number%uint32(len(validators)))]
	credited, err := rt.authored.Get()
	if err != nil {
		return saita.Address{}, err
	}
	if credited == rt.number+1 {
		return author, nil
	}
	if err := rt.staking.RewardByIDs(era, author, rt.params.PointsPerBlock); err != nil {
		return saita.Address{}, err
	}
	if err := rt.authored.Set(rt.number + 1); err != nil {
		return saita.Address{}, err
	}
	return author, nil
}

// EndEra closes the current era: the pending reward percent is promoted,
// the era reward is calculated, queued payouts are paid, liquid stakers get
// their derivative share and the next era starts.
func (rt *Runtime) EndEra() (saita.EraIndex, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	checkpoint := rt.state.NewCheckpoint()
	mark := rt.recorder.Len()

	next, err := rt.endEra()
	if err != nil {
		rt.state.RevertTo(checkpoint)
		rt.recorder.Truncate(mark)
		return 0, err
	}
	metricEraEndDuration().Observe(time.Since(start).Milliseconds())
	return next, nil
}

func (rt *Runtime) endEra() (saita.EraIndex, error) {
	era, err := rt.staking.CurrentEra()
	if err != nil {
		return 0, err
	}
	if err := rt.reward.PromoteRewardPercent(); err != nil {
		return 0, err
	}
	if err := rt.reward.CalculateReward(era); err != nil {
		return 0, errors.Wrapf(err, "calculate reward of era %d", era)
	}
	paid, err := rt.reward.DistributePending(rt.isolated)
	if err != nil {
		return 0, errors.Wrap(err, "distribute pending payouts")
	}
	if err := rt.isolated(rt.liquid.DistributeDerivativeRewards); err != nil {
		logger.Warn("derivative rewards deferred", "era", era, "err", err)
	}
	next, err := rt.staking.AdvanceEra()
	if err != nil {
		return 0, err
	}
	rt.recorder.Emit(&events.Event{
		Module: "runtime",
		Name:   "EraEnded",
		Era:    era,
		Value:  uint64(paid),
	})
	logger.Info("era ended", "era", era, "next", next, "payouts", paid)
	return next, nil
}

// isolated runs fn under its own checkpoint; a failure discards only the
// writes and events of fn.
func (rt *Runtime) isolated(fn func() error) error {
	checkpoint := rt.state.NewCheckpoint()
	mark := rt.recorder.Len()
	if err := fn(); err != nil {
		rt.state.RevertTo(checkpoint)
		rt.recorder.Truncate(mark)
		return err
	}
	return nil
}

// Commit persists the pending block: its events go to the event db and the
// state changes are written in one batch.
func (rt *Runtime) Commit() (uint32, saita.Bytes32, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.commit()
}

func (rt *Runtime) commit() (uint32, saita.Bytes32, error) {
	number := rt.number
	if err := rt.best.Set(number); err != nil {
		return 0, saita.Bytes32{}, err
	}
	evs := rt.recorder.Since(0)
	if rt.eventDB != nil {
		if err := rt.eventDB.Insert(number, evs); err != nil {
			return 0, saita.Bytes32{}, errors.Wrapf(err, "insert events of block %d", number)
		}
	}
	hash, err := rt.state.Stage().Commit()
	if err != nil {
		return 0, saita.Bytes32{}, errors.Wrapf(err, "commit block %d", number)
	}
	rt.recorder.Drain()
	rt.number++
	rt.initialized = true
	rt.ticker.broadcast()

	if staked, err := rt.liquid.StakedAccounts(); err == nil {
		metricStakedAccounts().Set(int64(len(staked)))
	}
	metricBlockNumber().Set(int64(number))
	logger.Debug("block committed", "number", number, "events", len(evs), "hash", hash)
	return number, hash, nil
}
