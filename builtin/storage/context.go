// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/saitachain/staking/saita"
	"github.com/saitachain/staking/state"
)

// Context binds the storage containers of one native module to the state.
type Context struct {
	address saita.Address
	state   *state.State
}

func NewContext(address saita.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() saita.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
