// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package payouts

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saitachain/staking/api/utils"
	"github.com/saitachain/staking/runtime"
	"github.com/saitachain/staking/saita"
)

type Payouts struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Payouts {
	return &Payouts{rt}
}

func (p *Payouts) handleGetPending(w http.ResponseWriter, _ *http.Request) error {
	pending := []saita.Address{}
	err := p.rt.Read(func(s *runtime.Services) error {
		validators, err := s.Reward.PendingPayouts()
		if err != nil {
			return err
		}
		pending = append(pending, validators...)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, pending)
}

func (p *Payouts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/pending").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(p.handleGetPending))
}
