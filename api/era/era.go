// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package era

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saitachain/staking/api/utils"
	"github.com/saitachain/staking/runtime"
)

type Era struct {
	CurrentEra        uint32  `json:"currentEra"`
	ActiveEra         uint32  `json:"activeEra"`
	BlockNumber       uint32  `json:"blockNumber"`
	BaseRewardPercent uint32  `json:"baseRewardPercent"`
	RewardPercent     *uint32 `json:"rewardPercent"`
	BondingDuration   uint32  `json:"bondingDuration"`
}

type API struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *API {
	return &API{rt}
}

func (a *API) handleGetEra(w http.ResponseWriter, _ *http.Request) error {
	// BlockNumber locks the runtime and cannot be called inside Read
	era := Era{BlockNumber: a.rt.BlockNumber()}
	err := a.rt.Read(func(s *runtime.Services) error {
		current, err := s.Staking.CurrentEra()
		if err != nil {
			return err
		}
		active, err := s.Staking.ActiveEra()
		if err != nil {
			return err
		}
		base, err := s.Reward.BaseRewardPercent()
		if err != nil {
			return err
		}
		pending, ok, err := s.Reward.RewardPercent()
		if err != nil {
			return err
		}
		if ok {
			era.RewardPercent = &pending
		}
		era.CurrentEra = uint32(current)
		era.ActiveEra = uint32(active)
		era.BaseRewardPercent = base
		era.BondingDuration = uint32(s.Staking.BondingDuration())
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, era)
}

func (a *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetEra))
}
