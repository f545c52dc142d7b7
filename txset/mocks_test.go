// Copyright (c) 2024 The txset developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txset

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// fakeAccount is a minimal Account used across the test files in this
// package.
type fakeAccount struct {
	id       AccountID
	balance  btcutil.Amount
	minimum  btcutil.Amount
}

func (a *fakeAccount) ID() AccountID                               { return a.id }
func (a *fakeAccount) Balance() btcutil.Amount                     { return a.balance }
func (a *fakeAccount) MinimumBalance(LedgerManager) btcutil.Amount { return a.minimum }

// fakeTx is a minimal Transaction. enforceSeqGap, when set, restricts
// CheckValid to succeed only when lastSeq+1 == seqNum, modeling the
// real per-account sequence contract; when unset, CheckValid always
// succeeds (unless forceInvalid is set).
type fakeTx struct {
	source        AccountID
	account       *fakeAccount
	seq           SequenceNumber
	fee           btcutil.Amount
	hash          chainhash.Hash
	envelope      []byte
	feeRatio      float64
	whitelisted   bool
	forceInvalid  bool
	enforceSeqGap bool
}

func (tx *fakeTx) SourceID() AccountID       { return tx.source }
func (tx *fakeTx) SourceAccount() Account    { return tx.account }
func (tx *fakeTx) SeqNum() SequenceNumber    { return tx.seq }
func (tx *fakeTx) Fee() btcutil.Amount       { return tx.fee }
func (tx *fakeTx) FullHash() chainhash.Hash  { return tx.hash }
func (tx *fakeTx) Envelope() []byte          { return tx.envelope }
func (tx *fakeTx) FeeRatio(LedgerManager) float64 { return tx.feeRatio }

func (tx *fakeTx) IsWhitelisted(ApplicationContext) bool { return tx.whitelisted }

func (tx *fakeTx) CheckValid(_ ApplicationContext, lastSeq SequenceNumber) bool {
	if tx.forceInvalid {
		return false
	}
	if tx.enforceSeqGap {
		return tx.seq == lastSeq+1
	}
	return true
}

// fakeLedgerManager is a minimal LedgerManager.
type fakeLedgerManager struct {
	header LedgerHeader
}

func (lm *fakeLedgerManager) LastClosedLedgerHeader() LedgerHeader { return lm.header }
func (lm *fakeLedgerManager) MaxTxSetSize() int                    { return int(lm.header.MaxTxSetSize) }

// fakeWhitelist is a minimal Whitelist.
type fakeWhitelist struct {
	reserve   int
	holder    AccountID
	hasHolder bool
}

func (w *fakeWhitelist) UnwhitelistedReserve(max int) int {
	if w.reserve > max {
		return max
	}
	return w.reserve
}

func (w *fakeWhitelist) AccountID() (AccountID, bool) { return w.holder, w.hasHolder }

// fakeScope is a no-op StorageScope.
type fakeScope struct{}

func (fakeScope) Close() error { return nil }

// fakeApp is a minimal ApplicationContext.
type fakeApp struct {
	wl *fakeWhitelist
	lm *fakeLedgerManager
}

func (a *fakeApp) Whitelist() Whitelist           { return a.wl }
func (a *fakeApp) LedgerManager() LedgerManager   { return a.lm }
func (a *fakeApp) ReadOnlyScope() (StorageScope, error) { return fakeScope{}, nil }

// hashFromByte returns a chainhash.Hash with every byte set to b, a
// convenient way to build distinguishable, ordered test hashes.
func hashFromByte(b byte) chainhash.Hash {
	var h chainhash.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

// acctFromByte returns an AccountID with every byte set to b.
func acctFromByte(b byte) AccountID {
	var a AccountID
	for i := range a {
		a[i] = b
	}
	return a
}
