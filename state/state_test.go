// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saitachain/staking/lvldb"
	"github.com/saitachain/staking/saita"
)

func M(a ...any) []any {
	return a
}

func newTestState(t *testing.T) (*State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestStateReadWrite(t *testing.T) {
	st, _ := newTestState(t)
	addr := saita.BytesToAddress([]byte("account"))
	key := saita.BytesToBytes32([]byte("key"))

	assert.Equal(t, M(rlp.RawValue(nil), nil), M(st.GetRawStorage(addr, key)))

	st.SetRawStorage(addr, key, rlp.RawValue{0x01})
	assert.Equal(t, M(rlp.RawValue{0x01}, nil), M(st.GetRawStorage(addr, key)))

	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(uint64(42))
	}))

	var n uint64
	require.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &n)
	}))
	assert.Equal(t, uint64(42), n)
}

func TestStateRevert(t *testing.T) {
	st, _ := newTestState(t)
	addr := saita.BytesToAddress([]byte("account"))
	key := saita.BytesToBytes32([]byte("key"))

	st.SetRawStorage(addr, key, rlp.RawValue{0x01})
	cp := st.NewCheckpoint()
	st.SetRawStorage(addr, key, rlp.RawValue{0x02})
	st.SetRawStorage(addr, saita.BytesToBytes32([]byte("other")), rlp.RawValue{0x03})

	st.RevertTo(cp)
	assert.Equal(t, M(rlp.RawValue{0x01}, nil), M(st.GetRawStorage(addr, key)))
	assert.Equal(t, M(rlp.RawValue(nil), nil), M(st.GetRawStorage(addr, saita.BytesToBytes32([]byte("other")))))
	assert.Equal(t, 1, st.Stage().Len())
}

func TestStageCommit(t *testing.T) {
	st, db := newTestState(t)
	addr := saita.BytesToAddress([]byte("account"))
	k1 := saita.BytesToBytes32([]byte("k1"))
	k2 := saita.BytesToBytes32([]byte("k2"))

	st.SetRawStorage(addr, k1, rlp.RawValue{0x01})
	st.SetRawStorage(addr, k2, rlp.RawValue{0x02})
	hash, err := st.Stage().Commit()
	require.NoError(t, err)
	assert.False(t, hash.IsZero())
	assert.Equal(t, 0, st.Stage().Len())

	// a fresh state over the same store sees committed values
	reopened := New(db)
	assert.Equal(t, M(rlp.RawValue{0x02}, nil), M(reopened.GetRawStorage(addr, k2)))

	// empty value deletes
	st.SetRawStorage(addr, k1, nil)
	_, err = st.Stage().Commit()
	require.NoError(t, err)
	_, err = db.Get(storageKey{addr, k1}.dbKey())
	assert.True(t, db.IsNotFound(err))
}

func TestStageHashIsOrderIndependent(t *testing.T) {
	addr := saita.BytesToAddress([]byte("account"))
	k1 := saita.BytesToBytes32([]byte("k1"))
	k2 := saita.BytesToBytes32([]byte("k2"))

	a, _ := newTestState(t)
	a.SetRawStorage(addr, k1, rlp.RawValue{0x01})
	a.SetRawStorage(addr, k2, rlp.RawValue{0x02})

	b, _ := newTestState(t)
	b.SetRawStorage(addr, k2, rlp.RawValue{0x02})
	b.SetRawStorage(addr, k1, rlp.RawValue{0x01})

	assert.Equal(t, a.Stage().Hash(), b.Stage().Hash())
}
