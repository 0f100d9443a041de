// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saitachain/staking/api/utils"
	"github.com/saitachain/staking/runtime"
	"github.com/saitachain/staking/saita"
)

type NominatorReward struct {
	Nominator saita.Address `json:"nominator"`
	Reward    string        `json:"reward"`
}

type ValidatorReward struct {
	Validator  saita.Address     `json:"validator"`
	Reward     string            `json:"reward"`
	Pending    bool              `json:"pending"`
	Nominators []NominatorReward `json:"nominators"`
}

type Rewards struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Rewards {
	return &Rewards{rt}
}

func (r *Rewards) handleGetValidator(w http.ResponseWriter, req *http.Request) error {
	validator, err := utils.AddressVar(req, "validator")
	if err != nil {
		return err
	}
	res := ValidatorReward{Validator: validator, Nominators: []NominatorReward{}}
	err = r.rt.Read(func(s *runtime.Services) error {
		reward, err := s.Reward.ValidatorReward(validator)
		if err != nil {
			return err
		}
		if res.Pending, err = s.Reward.IsPending(validator); err != nil {
			return err
		}
		nominators, err := s.Reward.RewardedNominators(validator)
		if err != nil {
			return err
		}
		for _, n := range nominators {
			nr, err := s.Reward.NominatorReward(validator, n)
			if err != nil {
				return err
			}
			res.Nominators = append(res.Nominators, NominatorReward{n, utils.FormatAmount(nr)})
		}
		res.Reward = utils.FormatAmount(reward)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (r *Rewards) handleGetNominator(w http.ResponseWriter, req *http.Request) error {
	validator, err := utils.AddressVar(req, "validator")
	if err != nil {
		return err
	}
	nominator, err := utils.AddressVar(req, "nominator")
	if err != nil {
		return err
	}
	var res NominatorReward
	err = r.rt.Read(func(s *runtime.Services) error {
		nr, err := s.Reward.NominatorReward(validator, nominator)
		if err != nil {
			return err
		}
		res = NominatorReward{nominator, utils.FormatAmount(nr)}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, res)
}

func (r *Rewards) handleGetBeneficial(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var total string
	err = r.rt.Read(func(s *runtime.Services) error {
		v, err := s.Reward.BeneficialReward(addr)
		if err != nil {
			return err
		}
		total = utils.FormatAmount(v)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"address": addr, "beneficialReward": total})
}

func (r *Rewards) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/beneficial/{address}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(r.handleGetBeneficial))
	sub.Path("/{validator}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(r.handleGetValidator))
	sub.Path("/{validator}/{nominator}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(r.handleGetNominator))
}
