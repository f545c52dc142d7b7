// Copyright (c) 2024 The txset developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txset

import "sort"

// SortForApply builds the list of transactions ready to be applied to
// the last closed ledger, based on this set. It does not mutate the
// set.
//
// The order satisfies:
//   - transactions for any one account are sorted by sequence number,
//     ascending.
//   - the order between accounts is randomized, using a value (the
//     set's own content hash) unknown to submitters until every
//     transaction in the set is fixed.
func (t *TxSetFrame) SortForApply() []Transaction {
	retList := make([]Transaction, len(t.transactions))
	copy(retList, t.transactions)

	// Sort all the txs by seqnum.
	sort.SliceStable(retList, func(i, j int) bool {
		return retList[i].SeqNum() < retList[j].SeqNum()
	})

	// Build the batches: batch[k] contains the k-th (0-based)
	// transaction for any account with a transaction in the set. This
	// guarantees no account's k-th transaction can ever be placed
	// ahead of its (k-1)-th.
	accountTxCount := make(map[AccountID]int)
	var batches [][]Transaction
	for _, tx := range retList {
		k := accountTxCount[tx.SourceID()]
		for len(batches) <= k {
			batches = append(batches, nil)
		}
		batches[k] = append(batches[k], tx)
		accountTxCount[tx.SourceID()] = k + 1
	}

	// contentsHash is not known until every transaction is committed
	// to the set; using it to randomize each batch independently
	// prevents a submitter from predicting cross-account interleaving.
	setHash := t.ContentsHash()

	retList = retList[:0]
	for _, batch := range batches {
		sort.SliceStable(batch, func(i, j int) bool {
			return lessThanXored(batch[i].FullHash(), batch[j].FullHash(), setHash)
		})
		retList = append(retList, batch...)
	}

	return retList
}
