// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package calls

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/saitachain/staking/api/events"
	"github.com/saitachain/staking/api/utils"
	"github.com/saitachain/staking/runtime"
	"github.com/saitachain/staking/saita"
)

type Origin struct {
	Root   bool           `json:"root"`
	Signer *saita.Address `json:"signer"`
}

// Args carries amounts in whole SAITA.
type Args struct {
	Amount  string          `json:"amount"`
	Account *saita.Address  `json:"account"`
	Targets []saita.Address `json:"targets"`
	Value   uint32          `json:"value"`
}

type Call struct {
	Origin Origin `json:"origin"`
	Method string `json:"method"`
	Args   Args   `json:"args"`
}

type Receipt struct {
	Method   string          `json:"method"`
	Reverted bool            `json:"reverted"`
	Error    string          `json:"error,omitempty"`
	Kind     string          `json:"kind,omitempty"`
	Events   []*events.Event `json:"events"`
}

type Calls struct {
	rt        *runtime.Runtime
	allowRoot bool
}

// New creates the call endpoint. Root calls are rejected unless allowRoot.
func New(rt *runtime.Runtime, allowRoot bool) *Calls {
	return &Calls{
		rt,
		allowRoot,
	}
}

func convertCall(c *Call) (*runtime.Call, error) {
	call := &runtime.Call{
		Method: c.Method,
		Args: runtime.Args{
			Targets: c.Args.Targets,
			Value:   c.Args.Value,
		},
	}
	switch {
	case c.Origin.Root && c.Origin.Signer != nil:
		return nil, errors.New("origin: root origin has no signer")
	case c.Origin.Root:
		call.Origin = runtime.RootOrigin
	case c.Origin.Signer != nil:
		call.Origin = runtime.Signed(*c.Origin.Signer)
	default:
		return nil, errors.New("origin: signer required")
	}
	if c.Args.Amount != "" {
		amount, err := utils.ParseAmount(c.Args.Amount)
		if err != nil {
			return nil, errors.WithMessage(err, "args.amount")
		}
		call.Args.Amount = amount
	}
	if c.Args.Account != nil {
		call.Args.Account = *c.Args.Account
	}
	return call, nil
}

func (c *Calls) handleCall(w http.ResponseWriter, req *http.Request) error {
	var body Call
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	call, err := convertCall(&body)
	if err != nil {
		return utils.BadRequest(err)
	}
	if call.Origin.Root && !c.allowRoot {
		return utils.Forbidden(errors.New("root calls are disabled"))
	}

	receipt := c.rt.Execute(call)
	out := Receipt{
		Method:   receipt.Method,
		Reverted: receipt.Reverted,
		Error:    receipt.Error,
		Kind:     receipt.Kind,
		Events:   make([]*events.Event, 0, len(receipt.Events)),
	}
	for _, ev := range receipt.Events {
		out.Events = append(out.Events, events.ConvertEvent(ev))
	}
	return utils.WriteJSON(w, out)
}

func (c *Calls) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(c.handleCall))
}
