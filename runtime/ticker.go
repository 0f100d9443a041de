// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "sync"

// ticker hands out channels that are closed on the next commit.
type ticker struct {
	mu sync.Mutex
	ch chan struct{}
}

func (t *ticker) wait() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ch == nil {
		t.ch = make(chan struct{})
	}
	return t.ch
}

func (t *ticker) broadcast() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ch != nil {
		close(t.ch)
		t.ch = nil
	}
}

// NewTicker returns a channel closed once the pending block is committed.
// Take the channel before reading state to not miss a commit.
func (rt *Runtime) NewTicker() <-chan struct{} {
	return rt.ticker.wait()
}
