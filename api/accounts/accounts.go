// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saitachain/staking/api/utils"
	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/runtime"
	"github.com/saitachain/staking/saita"
)

type Accounts struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Accounts {
	return &Accounts{rt}
}

func (a *Accounts) getAccount(addr saita.Address) (*Account, error) {
	acc := &Account{Unlocking: []Chunk{}}
	err := a.rt.Read(func(s *runtime.Services) error {
		balance, err := s.Assets.FreeBalance(saita.SAITA, addr)
		if err != nil {
			return err
		}
		liquid, err := s.Assets.FreeBalance(saita.SSAITA, addr)
		if err != nil {
			return err
		}
		stake, err := s.LiquidStaking.StakeOf(addr)
		if err != nil {
			return err
		}
		bonded, err := s.LiquidStaking.Bonded(addr)
		if err != nil {
			return err
		}
		chunks, err := s.LiquidStaking.Unlockings(addr)
		if err != nil {
			return err
		}
		beneficial, err := s.Reward.BeneficialReward(addr)
		if err != nil {
			return err
		}
		total, err := s.LiquidStaking.TotalStaked()
		if err != nil {
			return err
		}
		share := fixedpoint.Zero()
		if !total.IsZero() {
			if share, err = fixedpoint.ToFixed(fixedpoint.NewRational(stake, total), fixedpoint.Precision); err != nil {
				return err
			}
		}

		acc.Balance = utils.FormatAmount(balance)
		acc.LiquidBalance = utils.FormatAmount(liquid)
		acc.Stake = utils.FormatAmount(stake)
		acc.Bonded = utils.FormatAmount(bonded)
		acc.BeneficialReward = utils.FormatAmount(beneficial)
		acc.PoolShare = share.Dec()
		for _, c := range chunks {
			acc.Unlocking = append(acc.Unlocking, Chunk{Value: utils.FormatAmount(c.Value), TargetEra: uint32(c.TargetEra)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	acc, err := a.getAccount(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, acc)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
}

