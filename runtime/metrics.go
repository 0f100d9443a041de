// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/saitachain/staking/metrics"

var (
	metricCalls          = metrics.LazyLoadCounterVec("runtime_calls_count", []string{"method", "status"})
	metricEraEndDuration = metrics.LazyLoadHistogram("runtime_era_end_duration_ms", metrics.Bucket10s)
	metricBlockNumber    = metrics.LazyLoadGauge("runtime_block_number")
	metricStakedAccounts = metrics.LazyLoadGauge("runtime_staked_accounts")
)
