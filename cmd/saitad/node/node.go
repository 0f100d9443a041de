// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"context"
	"time"

	"github.com/saitachain/staking/log"
	"github.com/saitachain/staking/runtime"
)

var logger = log.WithContext("pkg", "node")

type Options struct {
	BlockInterval time.Duration
	// BlocksPerEra is the number of blocks after which an era ends.
	BlocksPerEra uint32
}

// Health receives the committed blocks.
type Health interface {
	NewBestBlock(number uint32)
}

// Node produces blocks on a fixed interval and closes eras.
type Node struct {
	rt      *runtime.Runtime
	health  Health
	options Options
}

func New(rt *runtime.Runtime, health Health, options Options) *Node {
	if options.BlocksPerEra == 0 {
		options.BlocksPerEra = 1
	}
	return &Node{
		rt:      rt,
		health:  health,
		options: options,
	}
}

// Run produces blocks until ctx is done.
func (n *Node) Run(ctx context.Context) error {
	n.loop(ctx)
	return nil
}

func (n *Node) loop(ctx context.Context) {
	logger.Info("prepared to produce blocks", "interval", n.options.BlockInterval, "blocksPerEra", n.options.BlocksPerEra)

	ticker := time.NewTicker(n.options.BlockInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping block production......")
			return
		case <-ticker.C:
			if err := n.produce(); err != nil {
				logger.Error("failed to produce block", "err", err)
			}
		}
	}
}

// produce credits the block author, ends the era on its last block and
// commits.
func (n *Node) produce() error {
	number := n.rt.BlockNumber()
	author, err := n.rt.ProduceBlock()
	if err != nil {
		return err
	}
	if number%n.options.BlocksPerEra == 0 {
		next, err := n.rt.EndEra()
		if err != nil {
			return err
		}
		logger.Debug("era closed", "block", number, "next", next)
	}
	committed, hash, err := n.rt.Commit()
	if err != nil {
		return err
	}
	if n.health != nil {
		n.health.NewBestBlock(committed)
	}
	logger.Debug("block produced", "number", committed, "author", author, "hash", hash)
	return nil
}
