// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfer

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/thor"
)

// Book persists the balances of a Ledger. Each entry is keyed by asset then
// holder and holds the big-endian balance; zero balances are deleted.
type Book struct {
	store kv.Store
}

func NewBook(store kv.Store) *Book {
	return &Book{store: store}
}

func bookKey(asset, holder thor.Address) []byte {
	return append(append(make([]byte, 0, 2*thor.AddressLength), asset[:]...), holder[:]...)
}

// Load credits every stored balance to l.
func (b *Book) Load(l *Ledger) (n int, err error) {
	iter := b.store.Iterate(kv.Range{})
	defer iter.Release()

	for iter.Next() {
		key := iter.Key()
		if len(key) != 2*thor.AddressLength {
			return n, errors.Errorf("book: malformed key %x", key)
		}
		asset := thor.BytesToAddress(key[:thor.AddressLength])
		holder := thor.BytesToAddress(key[thor.AddressLength:])
		l.Mint(asset, holder, new(big.Int).SetBytes(iter.Value()))
		n++
	}
	return n, iter.Error()
}

func (b *Book) save(putter kv.Putter, l *Ledger, asset, holder thor.Address) error {
	bal := l.BalanceOf(asset, holder)
	if bal.Sign() == 0 {
		return putter.Delete(bookKey(asset, holder))
	}
	return putter.Put(bookKey(asset, holder), bal.Bytes())
}

// Mint credits amount to l and persists the new balance.
func (b *Book) Mint(l *Ledger, asset, to thor.Address, amount *big.Int) error {
	l.Mint(asset, to, amount)
	return b.save(b.store, l, asset, to)
}

// Hook returns a transfer hook persisting both sides of every transfer made
// on l.
func (b *Book) Hook(l *Ledger) Hook {
	return func(asset, from, to thor.Address, _ *big.Int) error {
		bulk := b.store.Bulk()
		if err := b.save(bulk, l, asset, from); err != nil {
			return err
		}
		if err := b.save(bulk, l, asset, to); err != nil {
			return err
		}
		return errors.Wrap(bulk.Write(), "book: write")
	}
}
