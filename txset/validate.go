// Copyright (c) 2024 The txset developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txset

import (
	"sort"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// invalidTxPolicy decides what happens when a transaction fails its
// own validity check during checkOrTrim. Returning true tells
// checkOrTrim to continue scanning (trim mode drops the transaction);
// returning false aborts the whole check as failed (check mode).
type invalidTxPolicy func(tx Transaction, lastSeq SequenceNumber) bool

// insufficientBalancePolicy decides what happens when an account's
// non-whitelisted fee total would leave it below its minimum balance.
// Same continue/abort convention as invalidTxPolicy.
type insufficientBalancePolicy func(txs []Transaction) bool

// checkOrTrim is the shared validation engine behind TrimInvalid and
// CheckValid.
//
// It first asserts the set is in canonical (full-hash ascending)
// order -- a precondition, not something it repairs -- then groups
// transactions by source account, and for each account walks its
// transactions in sequence-number order running each one's own
// CheckValid and accumulating the non-whitelisted fee total. If the
// account's spendable balance minus that total would fall under its
// minimum balance, onInsufficientBalance is consulted with the
// account's transactions that passed their own CheckValid (those
// dropped by onInvalidTx earlier in the scan are not included).
func (t *TxSetFrame) checkOrTrim(app ApplicationContext, onInvalidTx invalidTxPolicy, onInsufficientBalance insufficientBalancePolicy) bool {
	accountTxs := make(map[AccountID][]Transaction)

	var lastHash chainhash.Hash
	for _, tx := range t.transactions {
		full := tx.FullHash()
		if hashLess(full, lastHash) {
			log.Debugf("bad txSet: %s not sorted correctly", t.previousLedgerHash)
			return false
		}
		accountTxs[tx.SourceID()] = append(accountTxs[tx.SourceID()], tx)
		lastHash = full
	}

	// Stable iteration order over accounts isn't required for
	// correctness -- every account's outcome is independent -- but
	// sorting keeps trimInvalid deterministic across runs for the
	// same input, which its idempotence property depends on.
	accounts := make([]AccountID, 0, len(accountTxs))
	for a := range accountTxs {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Less(accounts[j]) })

	for _, acct := range accounts {
		txs := accountTxs[acct]
		sort.SliceStable(txs, func(i, j int) bool {
			return txs[i].SeqNum() < txs[j].SeqNum()
		})

		var lastTx Transaction
		var lastSeq SequenceNumber
		var totFee btcutil.Amount

		i := 0
		for i < len(txs) {
			tx := txs[i]
			if !tx.CheckValid(app, lastSeq) {
				log.Debugf("bad txSet: %s tx invalid %x lastSeq:%d",
					t.previousLedgerHash, tx.Envelope(), lastSeq)

				if onInvalidTx(tx, lastSeq) {
					txs = append(txs[:i], txs[i+1:]...)
					continue
				}
				return false
			}

			if !tx.IsWhitelisted(app) {
				totFee += tx.Fee()
			}
			lastTx = tx
			lastSeq = tx.SeqNum()
			i++
		}

		if lastTx == nil {
			continue
		}

		acctHandle := lastTx.SourceAccount()
		newBalance := acctHandle.Balance() - totFee
		if newBalance < acctHandle.MinimumBalance(app.LedgerManager()) {
			log.Debugf("bad txSet: %s account %s can't pay fee",
				t.previousLedgerHash, acct)

			if !onInsufficientBalance(txs) {
				return false
			}
		}
	}

	return true
}

// TrimInvalid opens a read-only storage scope, canonicalizes the set,
// then removes every transaction that fails its own validity check
// and every transaction belonging to an account that cannot pay the
// fees of its own transactions in this set -- the whole account's
// transactions, not just the tail, since partial trimming would break
// sequence-number continuity of whatever remains. Trimmed transactions
// are returned in the order they were removed.
func (t *TxSetFrame) TrimInvalid(app ApplicationContext) ([]Transaction, error) {
	scope, err := app.ReadOnlyScope()
	if err != nil {
		return nil, err
	}
	defer scope.Close()

	t.sortForHash()

	var trimmed []Transaction

	onInvalidTx := func(tx Transaction, lastSeq SequenceNumber) bool {
		trimmed = append(trimmed, tx)
		t.RemoveTx(tx)
		return true
	}
	onInsufficientBalance := func(txs []Transaction) bool {
		for _, tx := range txs {
			trimmed = append(trimmed, tx)
			t.RemoveTx(tx)
		}
		return true
	}

	t.checkOrTrim(app, onInvalidTx, onInsufficientBalance)
	return trimmed, nil
}

// CheckValid opens a read-only storage scope, verifies the set parents
// the target ledger and fits within its size limit, and then rejects
// the whole set on the first invalid transaction or insolvent account
// it finds.
func (t *TxSetFrame) CheckValid(app ApplicationContext) bool {
	scope, err := app.ReadOnlyScope()
	if err != nil {
		log.Debugf("checkValid: could not open read-only scope: %v", err)
		return false
	}
	defer scope.Close()

	lcl := app.LedgerManager().LastClosedLedgerHeader()
	if lcl.Hash != t.previousLedgerHash {
		log.Debugf("bad txSet: %s; expected: %s",
			t.previousLedgerHash, lcl.Hash)
		return false
	}

	if uint32(len(t.transactions)) > lcl.MaxTxSetSize {
		log.Debugf("bad txSet: too many txs %d > %d",
			len(t.transactions), lcl.MaxTxSetSize)
		return false
	}

	abort := func(Transaction, SequenceNumber) bool { return false }
	abortBalance := func([]Transaction) bool { return false }

	return t.checkOrTrim(app, abort, abortBalance)
}
