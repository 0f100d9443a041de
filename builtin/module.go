// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/saita"
	"github.com/saitachain/staking/state"
)

type module struct {
	name    string
	Address saita.Address
}

func newModule(name string) *module {
	return &module{
		name,
		saita.BytesToAddress([]byte(name)),
	}
}

func (m *module) Name() string {
	return m.name
}

// WithState binds the storage of the module to st.
func (m *module) WithState(st *state.State) *storage.Context {
	return storage.NewContext(m.Address, st)
}
