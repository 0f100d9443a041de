// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

type BlockProduction struct {
	Number    uint32     `json:"number"`
	Timestamp *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy         bool             `json:"healthy"`
	BlockProduction *BlockProduction `json:"blockProduction"`
	Initialized     bool             `json:"initialized"`
}

// Health tracks block commits of the node. The node is healthy once genesis
// is in place and the last block was committed within one block interval
// plus a small delay.
type Health struct {
	lock          sync.RWMutex
	lastCommit    time.Time
	bestBlock     uint32
	initialized   bool
	blockInterval time.Duration
	now           func() time.Time
}

const delayBuffer = 5 * time.Second

func New(blockInterval time.Duration) *Health {
	return &Health{
		blockInterval: blockInterval,
		now:           time.Now,
	}
}

func (h *Health) Status() *Status {
	h.lock.RLock()
	defer h.lock.RUnlock()

	var ts *time.Time
	if !h.lastCommit.IsZero() {
		t := h.lastCommit
		ts = &t
	}
	healthy := h.initialized &&
		!h.lastCommit.IsZero() &&
		h.now().Sub(h.lastCommit) <= h.blockInterval+delayBuffer

	return &Status{
		Healthy: healthy,
		BlockProduction: &BlockProduction{
			Number:    h.bestBlock,
			Timestamp: ts,
		},
		Initialized: h.initialized,
	}
}

// NewBestBlock records a committed block.
func (h *Health) NewBestBlock(number uint32) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastCommit = h.now()
	h.bestBlock = number
}

func (h *Health) Initialized(initialized bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.initialized = initialized
}
