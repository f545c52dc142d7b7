// Copyright (c) 2024 The txset developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txset

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// AccountID is an opaque account identifier with a total order. It is
// sized to hold an ed25519 public key, the account identity scheme of
// the ledgers this package targets, but nothing in this package
// interprets the bytes beyond comparing and hashing them.
type AccountID [32]byte

// Less reports whether a sorts before b, lexicographically on the
// underlying bytes.
func (a AccountID) Less(b AccountID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// String returns the hex encoding of the account ID.
func (a AccountID) String() string {
	return hex.EncodeToString(a[:])
}

// SequenceNumber is a per-account, strictly monotonic counter.
type SequenceNumber = uint64

// Account is the minimal view of a source account's ledger state that
// checkOrTrim needs to evaluate fee solvency. Balance and reserve
// computation themselves are out of scope for this package; Account is
// a read-only handle onto an external collaborator that already knows
// how to compute them.
type Account interface {
	// ID returns the account's identifier.
	ID() AccountID

	// Balance returns the account's current spendable balance.
	Balance() btcutil.Amount

	// MinimumBalance returns the minimum balance the account must
	// retain under the given ledger's reserve requirements.
	MinimumBalance(lm LedgerManager) btcutil.Amount
}

// Transaction is the opaque handle a TxSetFrame operates on. Nothing
// in this package constructs one; they arrive via a TransactionFactory
// (when decoding from the wire) or from an external candidate pool
// (when being added to a freshly constructed set).
type Transaction interface {
	// SourceID returns the account that submitted the transaction.
	SourceID() AccountID

	// SourceAccount returns the ledger view of the source account.
	SourceAccount() Account

	// SeqNum returns the transaction's sequence number.
	SeqNum() SequenceNumber

	// Fee returns the fee the transaction offers to pay.
	Fee() btcutil.Amount

	// FullHash returns the transaction's unique byte identity. It is
	// assumed collision-resistant and is the sort/identity key for
	// everything in this package -- distinct from any semantic
	// content hash the transaction itself might expose.
	FullHash() chainhash.Hash

	// Envelope returns the exact wire-serialized transaction
	// envelope. contentsHash and toWire hash and serialize these
	// bytes directly; they must be stable for the lifetime of the
	// transaction.
	Envelope() []byte

	// FeeRatio returns the transaction's fee normalized by its
	// consumed capacity under the given ledger's cost model. Lower is
	// worse.
	FeeRatio(lm LedgerManager) float64

	// IsWhitelisted reports whether the transaction is exempt from
	// surge-pricing fee competition and from the account-level fee
	// total checkOrTrim accumulates.
	IsWhitelisted(app ApplicationContext) bool

	// CheckValid runs the transaction's own validity contract --
	// signature, authorization, and the seqNum == lastSeq+1 check --
	// against the given last-seen sequence number for its account.
	CheckValid(app ApplicationContext, lastSeq SequenceNumber) bool
}

// LedgerHeader is the subset of the last-closed ledger header this
// package needs.
type LedgerHeader struct {
	Hash         chainhash.Hash
	MaxTxSetSize uint32
}

// LedgerManager is the external collaborator that knows the current
// ledger's close state and capacity limit.
type LedgerManager interface {
	// LastClosedLedgerHeader returns the header of the most recently
	// closed ledger.
	LastClosedLedgerHeader() LedgerHeader

	// MaxTxSetSize returns the maximum number of transactions a set
	// may carry for the ledger currently being built.
	MaxTxSetSize() int
}

// Whitelist is the authority-controlled allow-list consulted by the
// surge-pricing filter.
type Whitelist interface {
	// UnwhitelistedReserve returns the minimum capacity, out of max,
	// reserved for non-whitelisted transactions.
	UnwhitelistedReserve(max int) int

	// AccountID returns the whitelist-holder account, if one is
	// configured. Its transactions receive absolute top priority
	// during surge pricing.
	AccountID() (AccountID, bool)
}

// StorageScope is a read-only storage-transaction scope, held open for
// the duration of trimInvalid or checkValid so that every
// Transaction.CheckValid/SourceAccount call in one pass sees a
// consistent view of account state. This package never writes through
// it.
type StorageScope interface {
	// Close releases the scope. It is safe to call more than once.
	Close() error
}

// ApplicationContext bundles the collaborators checkOrTrim and the
// surge-pricing filter need beyond the ledger header itself.
type ApplicationContext interface {
	// Whitelist returns the current whitelist oracle.
	Whitelist() Whitelist

	// LedgerManager returns the ledger manager collaborator.
	LedgerManager() LedgerManager

	// ReadOnlyScope opens a scoped read-only storage transaction.
	// Callers must Close it on every exit path.
	ReadOnlyScope() (StorageScope, error)
}

// TransactionFactory reconstructs a Transaction from its wire
// envelope. The network ID participates in signature verification
// downstream and is threaded through rather than assumed global.
type TransactionFactory interface {
	FromWire(networkID chainhash.Hash, envelope []byte) (Transaction, error)
}
