// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package assets keeps multi-currency balances. It is the single writer of
// every balance: other modules move funds only through Mint, BurnBestEffort
// and Transfer.
package assets

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/log"
	"github.com/saitachain/staking/saita"
)

var logger = log.WithContext("pkg", "assets")

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrKeepAlive           = errors.New("transfer would kill account")
	ErrUnknownCurrency     = errors.New("unknown currency")
	ErrCurrencyExists      = errors.New("currency already registered")
)

var (
	slotBalances = storage.Slot("balances")
	slotIssuance = storage.Slot("total-issuance")
	slotDecimals = storage.Slot("decimals")
)

type balanceKey struct {
	currency saita.CurrencyID
	account  saita.Address
}

func (k balanceKey) Bytes() []byte {
	b := binary.BigEndian.AppendUint32(make([]byte, 0, 4+saita.AddressLength), uint32(k.currency))
	return append(b, k.account[:]...)
}

// Assets implements the currency collaborator on top of the state.
type Assets struct {
	balances           *storage.Mapping[balanceKey, *uint256.Int]
	issuance           *storage.Mapping[storage.Uint32Key, *uint256.Int]
	decimals           *storage.Mapping[storage.Uint32Key, uint8]
	existentialDeposit *uint256.Int
}

func New(ctx *storage.Context, existentialDeposit *uint256.Int) *Assets {
	if existentialDeposit == nil {
		existentialDeposit = fixedpoint.Zero()
	}
	return &Assets{
		balances:           storage.NewMapping[balanceKey, *uint256.Int](ctx, slotBalances),
		issuance:           storage.NewMapping[storage.Uint32Key, *uint256.Int](ctx, slotIssuance),
		decimals:           storage.NewMapping[storage.Uint32Key, uint8](ctx, slotDecimals),
		existentialDeposit: existentialDeposit,
	}
}

// RegisterCurrency makes a currency known with its decimals.
func (a *Assets) RegisterCurrency(currency saita.CurrencyID, decimals uint8) error {
	exists, err := a.decimals.Exists(storage.Uint32Key(currency))
	if err != nil {
		return err
	}
	if exists {
		return ErrCurrencyExists
	}
	return a.decimals.Set(storage.Uint32Key(currency), decimals)
}

// Decimals returns the decimals of a currency, and false if it is not registered.
func (a *Assets) Decimals(currency saita.CurrencyID) (uint8, bool, error) {
	exists, err := a.decimals.Exists(storage.Uint32Key(currency))
	if err != nil || !exists {
		return 0, false, err
	}
	d, err := a.decimals.Get(storage.Uint32Key(currency))
	return d, err == nil, err
}

func (a *Assets) requireCurrency(currency saita.CurrencyID) error {
	_, ok, err := a.Decimals(currency)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(ErrUnknownCurrency, currency.String())
	}
	return nil
}

func (a *Assets) balance(currency saita.CurrencyID, account saita.Address) (*uint256.Int, error) {
	bal, err := a.balances.Get(balanceKey{currency, account})
	if err != nil {
		return nil, err
	}
	return bal, nil
}

func (a *Assets) setBalance(currency saita.CurrencyID, account saita.Address, bal *uint256.Int) error {
	key := balanceKey{currency, account}
	if bal.IsZero() {
		a.balances.Delete(key)
		return nil
	}
	return a.balances.Set(key, bal)
}

// FreeBalance returns the balance of account in currency.
func (a *Assets) FreeBalance(currency saita.CurrencyID, account saita.Address) (*uint256.Int, error) {
	return a.balance(currency, account)
}

// TotalIssuance returns the amount of currency in existence.
func (a *Assets) TotalIssuance(currency saita.CurrencyID) (*uint256.Int, error) {
	return a.issuance.Get(storage.Uint32Key(currency))
}

func (a *Assets) adjustIssuance(currency saita.CurrencyID, delta *uint256.Int, increase bool) error {
	total, err := a.issuance.Get(storage.Uint32Key(currency))
	if err != nil {
		return err
	}
	if increase {
		total, err = fixedpoint.Add(total, delta)
	} else {
		total, err = fixedpoint.Sub(total, delta)
	}
	if err != nil {
		return err
	}
	return a.issuance.Set(storage.Uint32Key(currency), total)
}

// Mint creates amount of currency in account.
func (a *Assets) Mint(currency saita.CurrencyID, account saita.Address, amount *uint256.Int) error {
	if err := a.requireCurrency(currency); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}
	bal, err := a.balance(currency, account)
	if err != nil {
		return err
	}
	bal, err = fixedpoint.Add(bal, amount)
	if err != nil {
		return err
	}
	if err := a.adjustIssuance(currency, amount, true); err != nil {
		return err
	}
	logger.Debug("minted", "currency", currency, "account", account, "amount", amount)
	return a.setBalance(currency, account, bal)
}

// BurnBestEffort destroys up to amount of currency held by account and
// returns the amount actually burned.
func (a *Assets) BurnBestEffort(currency saita.CurrencyID, account saita.Address, amount *uint256.Int) (*uint256.Int, error) {
	if err := a.requireCurrency(currency); err != nil {
		return nil, err
	}
	bal, err := a.balance(currency, account)
	if err != nil {
		return nil, err
	}
	burned := new(uint256.Int).Set(amount)
	if bal.Lt(amount) {
		burned.Set(bal)
	}
	if burned.IsZero() {
		return burned, nil
	}
	if err := a.adjustIssuance(currency, burned, false); err != nil {
		return nil, err
	}
	logger.Debug("burned", "currency", currency, "account", account, "requested", amount, "burned", burned)
	return burned, a.setBalance(currency, account, new(uint256.Int).Sub(bal, burned))
}

// Transfer moves amount of currency. With keepAlive the sender must retain at
// least the existential deposit.
func (a *Assets) Transfer(currency saita.CurrencyID, from, to saita.Address, amount *uint256.Int, keepAlive bool) error {
	if err := a.requireCurrency(currency); err != nil {
		return err
	}
	if amount.IsZero() || from == to {
		return nil
	}
	fromBal, err := a.balance(currency, from)
	if err != nil {
		return err
	}
	remaining, err := fixedpoint.Sub(fromBal, amount)
	if err != nil {
		return errors.Wrapf(ErrInsufficientBalance, "%v has %v, needs %v", from, fromBal, amount)
	}
	if keepAlive && remaining.Lt(a.existentialDeposit) {
		return ErrKeepAlive
	}
	toBal, err := a.balance(currency, to)
	if err != nil {
		return err
	}
	toBal, err = fixedpoint.Add(toBal, amount)
	if err != nil {
		return err
	}
	if err := a.setBalance(currency, from, remaining); err != nil {
		return err
	}
	return a.setBalance(currency, to, toBal)
}
