// Copyright (c) 2024 The txset developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txset

import (
	"crypto/sha256"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TxSetFrame is the unit of this package: a candidate transaction set
// for the next ledger, bound to the parent ledger it targets.
//
// TxSetFrame is a single-owner value. All mutation and inspection are
// expected to happen on one logical thread of control; concurrent
// access must be externally synchronized.
type TxSetFrame struct {
	previousLedgerHash chainhash.Hash
	transactions       []Transaction

	hash      chainhash.Hash
	hashValid bool
}

// New returns an empty TxSetFrame bound to the given parent ledger
// hash.
func New(previousLedgerHash chainhash.Hash) *TxSetFrame {
	return &TxSetFrame{previousLedgerHash: previousLedgerHash}
}

// Len returns the number of transactions currently in the set.
func (t *TxSetFrame) Len() int {
	return len(t.transactions)
}

// Transactions returns a copy of the set's current transaction order.
// Callers must not rely on it reflecting subsequent mutations.
func (t *TxSetFrame) Transactions() []Transaction {
	out := make([]Transaction, len(t.transactions))
	copy(out, t.transactions)
	return out
}

// PreviousLedgerHash returns the parent ledger hash this set targets.
func (t *TxSetFrame) PreviousLedgerHash() chainhash.Hash {
	return t.previousLedgerHash
}

// SetPreviousLedgerHash re-parents the set and invalidates the cached
// content hash, mirroring the non-const accessor of the structure this
// package is modeled on: even a caller that only means to read through
// a mutable handle is assumed to be about to mutate, so the cache is
// dropped unconditionally.
func (t *TxSetFrame) SetPreviousLedgerHash(h chainhash.Hash) {
	t.previousLedgerHash = h
	t.hashValid = false
}

// Add appends tx to the set and invalidates the cached content hash.
func (t *TxSetFrame) Add(tx Transaction) {
	t.transactions = append(t.transactions, tx)
	t.hashValid = false
}

// RemoveTx removes tx from the set if present, identified by full
// hash, and invalidates the cached content hash. Removing a
// transaction that is not present is a no-op.
func (t *TxSetFrame) RemoveTx(tx Transaction) {
	target := tx.FullHash()
	for i, cur := range t.transactions {
		if cur.FullHash() == target {
			t.transactions = append(t.transactions[:i], t.transactions[i+1:]...)
			break
		}
	}
	t.hashValid = false
}

// sortForHash reorders transactions ascending by full hash. Needed
// because multiple transactions can carry the same semantic contents;
// the full hash is what disambiguates them for a total order.
func (t *TxSetFrame) sortForHash() {
	sort.SliceStable(t.transactions, func(i, j int) bool {
		return hashLess(t.transactions[i].FullHash(), t.transactions[j].FullHash())
	})
	t.hashValid = false
}

// SortForHash is the exported entry point for sortForHash; it is
// idempotent and safe to call whenever a caller needs a canonical
// ordering without going through ContentsHash.
func (t *TxSetFrame) SortForHash() {
	t.sortForHash()
}

// ContentsHash returns the set's content hash, memoized until the next
// mutation. It sorts the set into canonical order first -- the content
// hash is defined only on a canonical set -- then feeds the parent
// ledger hash and each transaction's exact wire envelope, in canonical
// order, into SHA-256.
func (t *TxSetFrame) ContentsHash() chainhash.Hash {
	if t.hashValid {
		return t.hash
	}

	t.sortForHash()

	h := sha256.New()
	h.Write(t.previousLedgerHash[:])
	for _, tx := range t.transactions {
		h.Write(tx.Envelope())
	}

	var sum chainhash.Hash
	copy(sum[:], h.Sum(nil))

	t.hash = sum
	t.hashValid = true
	return t.hash
}
