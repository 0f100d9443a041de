// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package saita

import "slices"

// SortAddresses sorts addresses ascending in place.
func SortAddresses(addrs []Address) {
	slices.SortFunc(addrs, func(a, b Address) int { return a.Compare(b) })
}

// InsertAddress inserts addr into the ascending slice, returning false if already present.
func InsertAddress(addrs []Address, addr Address) ([]Address, bool) {
	i, found := slices.BinarySearchFunc(addrs, addr, func(a, b Address) int { return a.Compare(b) })
	if found {
		return addrs, false
	}
	return slices.Insert(addrs, i, addr), true
}

// RemoveAddress removes addr from the ascending slice, returning false if absent.
func RemoveAddress(addrs []Address, addr Address) ([]Address, bool) {
	i, found := slices.BinarySearchFunc(addrs, addr, func(a, b Address) int { return a.Compare(b) })
	if !found {
		return addrs, false
	}
	return slices.Delete(addrs, i, i+1), true
}

// ContainsAddress reports whether the ascending slice holds addr.
func ContainsAddress(addrs []Address, addr Address) bool {
	_, found := slices.BinarySearchFunc(addrs, addr, func(a, b Address) int { return a.Compare(b) })
	return found
}
