// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"slices"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/events"
	"github.com/saitachain/staking/saita"
)

var errUnknownMethod = errors.New("unknown method")

// Origin is who dispatched a call. Root origins carry no signer.
type Origin struct {
	Root   bool          `json:"root"`
	Signer saita.Address `json:"signer"`
}

// Signed returns the origin of a call signed by who.
func Signed(who saita.Address) Origin {
	return Origin{Signer: who}
}

// RootOrigin is the privileged origin.
var RootOrigin = Origin{Root: true}

// Args are the arguments of a call. Methods ignore the ones they do not take.
type Args struct {
	Amount *uint256.Int `json:"amount,omitempty"`
	// Account is the destination of claimFor or the validator of reward calls.
	Account saita.Address   `json:"account"`
	Targets []saita.Address `json:"targets,omitempty"`
	Value   uint32          `json:"value,omitempty"`
}

func (a *Args) amount() *uint256.Int {
	if a.Amount == nil {
		return fixedpoint.Zero()
	}
	return a.Amount
}

type Call struct {
	Origin Origin `json:"origin"`
	Method string `json:"method"`
	Args   Args   `json:"args"`
}

// Receipt is the outcome of a call. A reverted call leaves no trace in state
// and carries no events.
type Receipt struct {
	Method   string          `json:"method"`
	Reverted bool            `json:"reverted"`
	Error    string          `json:"error,omitempty"`
	Kind     string          `json:"kind,omitempty"`
	Events   []*events.Event `json:"events"`

	Err error `json:"-"`
}

type method struct {
	root bool
	run  func(rt *Runtime, who saita.Address, args *Args) error
}

var methods = make(map[string]*method)

func init() {
	defines := []struct {
		name string
		root bool
		run  func(rt *Runtime, who saita.Address, args *Args) error
	}{
		{"stake", false, func(rt *Runtime, who saita.Address, args *Args) error {
			return rt.liquid.Stake(who, args.amount())
		}},
		{"unstake", false, func(rt *Runtime, who saita.Address, args *Args) error {
			return rt.liquid.Unstake(who, args.amount())
		}},
		{"claimFor", false, func(rt *Runtime, _ saita.Address, args *Args) error {
			return rt.liquid.ClaimFor(args.Account)
		}},
		{"bond", false, func(rt *Runtime, who saita.Address, args *Args) error {
			return rt.liquid.Bond(who, args.amount())
		}},
		{"bondExtra", false, func(rt *Runtime, who saita.Address, args *Args) error {
			return rt.liquid.BondExtra(who, args.amount())
		}},
		{"unbond", false, func(rt *Runtime, who saita.Address, args *Args) error {
			return rt.liquid.Unbond(who, args.amount())
		}},
		{"rebond", false, func(rt *Runtime, who saita.Address, args *Args) error {
			return rt.liquid.Rebond(who, args.amount())
		}},
		{"withdrawUnbonded", false, func(rt *Runtime, who saita.Address, _ *Args) error {
			return rt.liquid.WithdrawUnbonded(who)
		}},
		{"nominate", false, func(rt *Runtime, who saita.Address, args *Args) error {
			return rt.liquid.Nominate(who, args.Targets)
		}},
		{"claimReward", false, func(rt *Runtime, who saita.Address, _ *Args) error {
			return rt.liquid.ClaimReward(who)
		}},
		{"claimDerivative", false, func(rt *Runtime, who saita.Address, _ *Args) error {
			return rt.liquid.ClaimDerivative(who)
		}},
		{"requestPayout", false, func(rt *Runtime, _ saita.Address, args *Args) error {
			return rt.reward.RequestPayout(args.Account)
		}},
		{"claimRewards", false, func(rt *Runtime, _ saita.Address, args *Args) error {
			return rt.reward.ClaimRewards(args.Account)
		}},
		{"checkValidatorReward", false, func(rt *Runtime, _ saita.Address, args *Args) error {
			return rt.reward.CheckValidatorReward(args.Account)
		}},
		{"checkNominatorReward", false, func(rt *Runtime, _ saita.Address, args *Args) error {
			return rt.reward.CheckNominatorReward(args.Account)
		}},
		{"setRewardPercent", true, func(rt *Runtime, _ saita.Address, args *Args) error {
			return rt.reward.SetRewardPercent(args.Value)
		}},
	}
	for _, def := range defines {
		methods[def.name] = &method{root: def.root, run: def.run}
	}
}

// Methods returns the names of all dispatchable methods.
func Methods() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
