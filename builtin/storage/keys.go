// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"encoding/binary"

	"github.com/saitachain/staking/saita"
)

// PairKey addresses an entry by two accounts, e.g. (validator, nominator).
type PairKey struct {
	First  saita.Address
	Second saita.Address
}

func (k PairKey) Bytes() []byte {
	b := make([]byte, 0, 2*saita.AddressLength)
	return append(append(b, k.First[:]...), k.Second[:]...)
}

// Uint32Key addresses an entry by a small integer such as an era index.
type Uint32Key uint32

func (k Uint32Key) Bytes() []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(k))
}

// Slot derives a storage slot from a readable name.
func Slot(name string) saita.Bytes32 {
	return saita.BytesToBytes32([]byte(name))
}
