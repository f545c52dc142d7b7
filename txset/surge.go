// Copyright (c) 2024 The txset developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txset

import "sort"

// SurgePricingFilter trims the set down to the target ledger's
// capacity when demand exceeds it, using fee ratio to rank
// non-whitelisted transactions and granting the whitelist-holder
// account (if configured) absolute top priority.
//
// Sorting in a whitelisted world:
//  1. transactions are partitioned into whitelisted and
//     non-whitelisted lists.
//  2. whitelisted transactions are sorted in a deterministic order so
//     every replica settles on the same set.
//  3. whitelisted transactions are trimmed if necessary, to make room
//     for non-whitelisted transactions.
//  4. non-whitelisted transactions are sorted, with fee ratio as a
//     determinant, and trimmed to fit in the space left over.
//
// If there are fewer non-whitelisted transactions than the space
// reserved for them, the extra room is filled with whitelisted
// transactions, and vice versa.
func (t *TxSetFrame) SurgePricingFilter(lm LedgerManager, app ApplicationContext) {
	max := lm.MaxTxSetSize()
	if len(t.transactions) <= max {
		return
	}

	log.Warnf("surge pricing in effect! %d transactions over a max of %d",
		len(t.transactions), max)

	whitelist := app.Whitelist()
	whitelistID, hasWhitelistID := whitelist.AccountID()

	reserve := whitelist.UnwhitelistedReserve(max)

	var whitelisted, unwhitelisted []Transaction
	for _, tx := range t.transactions {
		if tx.IsWhitelisted(app) {
			whitelisted = append(whitelisted, tx)
		} else {
			unwhitelisted = append(unwhitelisted, tx)
		}
	}

	// Adjust the reserve downward if there are fewer unwhitelisted
	// transactions than it asks for; don't hold empty seats.
	if len(unwhitelisted) < reserve {
		reserve = len(unwhitelisted)
	}

	// accountFeeRatio[A] is the minimum, over every transaction
	// sourced from A, of that transaction's fee ratio -- an account is
	// only as attractive as its worst-paying transaction, since every
	// earlier seqNum must be admitted to admit a later one.
	accountFeeRatio := make(map[AccountID]float64)
	seen := make(map[AccountID]bool)
	for _, tx := range t.transactions {
		r := tx.FeeRatio(lm)
		a := tx.SourceID()
		if !seen[a] || r < accountFeeRatio[a] {
			accountFeeRatio[a] = r
			seen[a] = true
		}
	}

	cmp := func(whitelistGroup bool) func(t1, t2 Transaction) bool {
		return func(t1, t2 Transaction) bool {
			if t1.SourceID() == t2.SourceID() {
				return t1.SeqNum() < t2.SeqNum()
			}
			if hasWhitelistID {
				if t1.SourceID() == whitelistID {
					return true
				}
				if t2.SourceID() == whitelistID {
					return false
				}
			}
			if whitelistGroup {
				return t1.SourceID().Less(t2.SourceID())
			}
			f1, f2 := accountFeeRatio[t1.SourceID()], accountFeeRatio[t2.SourceID()]
			if f1 == f2 {
				return t1.SourceID().Less(t2.SourceID())
			}
			return f1 > f2
		}
	}

	sort.SliceStable(whitelisted, func(i, j int) bool {
		return cmp(true)(whitelisted[i], whitelisted[j])
	})

	whitelistCapacity := max - reserve
	if len(whitelisted) > whitelistCapacity {
		for _, tx := range whitelisted[whitelistCapacity:] {
			t.RemoveTx(tx)
		}
	}

	extraWhitelistRoom := 0
	if len(whitelisted) < whitelistCapacity {
		extraWhitelistRoom = whitelistCapacity - len(whitelisted)
	}
	totalUnwhitelistedCapacity := reserve + extraWhitelistRoom

	if len(unwhitelisted) <= totalUnwhitelistedCapacity {
		return
	}

	// Sort a snapshot, never the live sequence, and remove by
	// identity -- removeTx mutates t.transactions, which must not be
	// the slice we are iterating.
	tempList := make([]Transaction, len(unwhitelisted))
	copy(tempList, unwhitelisted)
	sort.SliceStable(tempList, func(i, j int) bool {
		return cmp(false)(tempList[i], tempList[j])
	})

	for _, tx := range tempList[totalUnwhitelistedCapacity:] {
		t.RemoveTx(tx)
	}
}
