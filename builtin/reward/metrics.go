// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import "github.com/saitachain/staking/metrics"

var (
	metricPayoutVolume   = metrics.LazyLoadCounter("reward_payout_tokens")
	metricPendingPayouts = metrics.LazyLoadGauge("reward_pending_payouts")
)
