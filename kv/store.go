// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key-value store the module state is persisted in.
package kv

// Getter reads values. A missing key is reported by an error that
// IsNotFound recognizes.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Bulk collects writes and applies them in one atomic Write.
type Bulk interface {
	Putter
	Write() error
}

// Store is what a block commit needs: point reads and atomic batches.
type Store interface {
	Getter
	Putter
	Bulk() Bulk
}
