// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saitachain/staking/api/utils"
	"github.com/saitachain/staking/builtin/liquidstaking/matching"
	"github.com/saitachain/staking/runtime"
	"github.com/saitachain/staking/saita"
)

type Reservable struct {
	Total    string `json:"total"`
	Reserved string `json:"reserved"`
	Free     string `json:"free"`
}

type Pool struct {
	Account             saita.Address   `json:"account"`
	Stake               Reservable      `json:"stake"`
	Unstake             Reservable      `json:"unstake"`
	TotalStaked         string          `json:"totalStaked"`
	StakedAccounts      int             `json:"stakedAccounts"`
	DistributableReward string          `json:"distributableReward"`
	RewardQueue         []saita.Address `json:"rewardQueue"`
}

func convertReservable(r *matching.ReservableAmount) (Reservable, error) {
	free, err := r.Free()
	if err != nil {
		return Reservable{}, err
	}
	return Reservable{
		Total:    utils.FormatAmount(r.Total),
		Reserved: utils.FormatAmount(r.Reserved),
		Free:     utils.FormatAmount(free),
	}, nil
}

type API struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *API {
	return &API{rt}
}

func (a *API) getPool() (*Pool, error) {
	var pool Pool
	err := a.rt.Read(func(s *runtime.Services) error {
		ls := s.LiquidStaking
		ledger, err := ls.MatchingPool()
		if err != nil {
			return err
		}
		if pool.Stake, err = convertReservable(&ledger.Stake); err != nil {
			return err
		}
		if pool.Unstake, err = convertReservable(&ledger.Unstake); err != nil {
			return err
		}
		total, err := ls.TotalStaked()
		if err != nil {
			return err
		}
		staked, err := ls.StakedAccounts()
		if err != nil {
			return err
		}
		distributable, err := ls.DistributableReward()
		if err != nil {
			return err
		}
		queue, err := ls.DerivativeRewardAccounts()
		if err != nil {
			return err
		}
		pool.Account = ls.Account()
		pool.TotalStaked = utils.FormatAmount(total)
		pool.StakedAccounts = len(staked)
		pool.DistributableReward = utils.FormatAmount(distributable)
		pool.RewardQueue = append([]saita.Address{}, queue...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

func (a *API) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	pool, err := a.getPool()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, pool)
}

func (a *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetPool))
}
