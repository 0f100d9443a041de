// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/saitachain/staking/saita"
)

// AddressSet is a stored set of accounts, iterated in ascending order.
type AddressSet struct {
	value *Value[[]saita.Address]
}

func NewAddressSet(context *Context, slot saita.Bytes32) *AddressSet {
	return &AddressSet{value: NewValue[[]saita.Address](context, slot)}
}

func (s *AddressSet) Members() ([]saita.Address, error) {
	return s.value.Get()
}

func (s *AddressSet) Contains(addr saita.Address) (bool, error) {
	members, err := s.value.Get()
	if err != nil {
		return false, err
	}
	return saita.ContainsAddress(members, addr), nil
}

// Add inserts addr and reports whether it was absent.
func (s *AddressSet) Add(addr saita.Address) (bool, error) {
	members, err := s.value.Get()
	if err != nil {
		return false, err
	}
	members, added := saita.InsertAddress(members, addr)
	if !added {
		return false, nil
	}
	return true, s.value.Set(members)
}

// Remove deletes addr and reports whether it was present.
func (s *AddressSet) Remove(addr saita.Address) (bool, error) {
	members, err := s.value.Get()
	if err != nil {
		return false, err
	}
	members, removed := saita.RemoveAddress(members, addr)
	if !removed {
		return false, nil
	}
	if len(members) == 0 {
		s.value.Delete()
		return true, nil
	}
	return true, s.value.Set(members)
}

func (s *AddressSet) Len() (int, error) {
	members, err := s.value.Get()
	return len(members), err
}

// Clear removes all members.
func (s *AddressSet) Clear() {
	s.value.Delete()
}
