// Copyright (c) 2024 The txset developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func containsAccount(txs []Transaction, a AccountID) bool {
	for _, tx := range txs {
		if tx.SourceID() == a {
			return true
		}
	}
	return false
}

func TestSurgePricingFilterNoWhitelist(t *testing.T) {
	low := acctFromByte(0x01)
	mid := acctFromByte(0x02)
	high := acctFromByte(0x03)

	set := New(hashFromByte(0x00))
	set.Add(&fakeTx{source: low, hash: hashFromByte(0x01), feeRatio: 1.0})
	set.Add(&fakeTx{source: mid, hash: hashFromByte(0x02), feeRatio: 2.0})
	set.Add(&fakeTx{source: high, hash: hashFromByte(0x03), feeRatio: 3.0})

	lm := &fakeLedgerManager{header: LedgerHeader{MaxTxSetSize: 2}}
	app := &fakeApp{wl: &fakeWhitelist{}, lm: lm}

	set.SurgePricingFilter(lm, app)

	require.Equal(t, 2, set.Len())
	got := set.Transactions()
	require.False(t, containsAccount(got, low))
	require.True(t, containsAccount(got, mid))
	require.True(t, containsAccount(got, high))
}

func TestSurgePricingFilterWithWhitelistHolder(t *testing.T) {
	holder := acctFromByte(0xA0)
	whitelistedNonHolder := acctFromByte(0xB0)
	payWell := acctFromByte(0xC0)
	payPoorly := acctFromByte(0xD0)

	set := New(hashFromByte(0x00))
	set.Add(&fakeTx{source: holder, hash: hashFromByte(0x01), whitelisted: true})
	set.Add(&fakeTx{source: whitelistedNonHolder, hash: hashFromByte(0x02), whitelisted: true})
	set.Add(&fakeTx{source: payWell, hash: hashFromByte(0x03), feeRatio: 5.0})
	set.Add(&fakeTx{source: payPoorly, hash: hashFromByte(0x04), feeRatio: 1.0})

	lm := &fakeLedgerManager{header: LedgerHeader{MaxTxSetSize: 2}}
	app := &fakeApp{
		wl: &fakeWhitelist{reserve: 1, holder: holder, hasHolder: true},
		lm: lm,
	}

	set.SurgePricingFilter(lm, app)

	require.Equal(t, 2, set.Len())
	got := set.Transactions()
	require.True(t, containsAccount(got, holder))
	require.True(t, containsAccount(got, payWell))
	require.False(t, containsAccount(got, whitelistedNonHolder))
	require.False(t, containsAccount(got, payPoorly))
}

func TestSurgePricingFilterNoopUnderCapacity(t *testing.T) {
	set := New(hashFromByte(0x00))
	set.Add(&fakeTx{source: acctFromByte(0x01), hash: hashFromByte(0x01)})

	lm := &fakeLedgerManager{header: LedgerHeader{MaxTxSetSize: 5}}
	app := &fakeApp{wl: &fakeWhitelist{}, lm: lm}

	set.SurgePricingFilter(lm, app)
	require.Equal(t, 1, set.Len())
}

func TestSurgePricingFilterPreservesSeqOrderWithinAccount(t *testing.T) {
	acct := acctFromByte(0x01)
	other := acctFromByte(0x02)

	set := New(hashFromByte(0x00))
	set.Add(&fakeTx{source: acct, seq: 1, hash: hashFromByte(0x01), feeRatio: 9.0})
	set.Add(&fakeTx{source: acct, seq: 2, hash: hashFromByte(0x02), feeRatio: 9.0})
	set.Add(&fakeTx{source: other, seq: 1, hash: hashFromByte(0x03), feeRatio: 0.1})

	lm := &fakeLedgerManager{header: LedgerHeader{MaxTxSetSize: 2}}
	app := &fakeApp{wl: &fakeWhitelist{}, lm: lm}

	set.SurgePricingFilter(lm, app)

	got := set.Transactions()
	require.Len(t, got, 2)
	for _, tx := range got {
		require.Equal(t, acct, tx.SourceID())
	}
}
