// Copyright (c) 2024 The txset developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txset

import (
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// MaxTxsPerMessage bounds how many envelopes WireTransactionSet.Decode
// will read out of a single message, and also caps the byte length of
// each envelope it reads, mirroring the sanity ceilings wire.MsgBlock
// applies to its own transaction vector. It is deliberately generous;
// the real ceiling for a given ledger is LedgerManager.MaxTxSetSize,
// enforced by checkValid, not by the decoder.
const MaxTxsPerMessage = 1 << 20

// WireTransactionSet is the external, bit-exact wire representation of
// a TxSetFrame: the parent ledger hash followed by a length-prefixed
// array of transaction envelopes, in whatever order the frame held
// them in when serialized. No implicit sorting happens here --
// callers that need canonical wire output call SortForHash first.
type WireTransactionSet struct {
	PreviousLedgerHash chainhash.Hash
	Txs                [][]byte
}

// Encode writes the wire representation to w.
func (s *WireTransactionSet) Encode(w io.Writer) error {
	if _, err := w.Write(s.PreviousLedgerHash[:]); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, 0, uint64(len(s.Txs))); err != nil {
		return err
	}
	for _, envelope := range s.Txs {
		if err := wire.WriteVarBytes(w, 0, envelope); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a wire representation from r.
func (s *WireTransactionSet) Decode(r io.Reader) error {
	if _, err := io.ReadFull(r, s.PreviousLedgerHash[:]); err != nil {
		return err
	}

	count, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	if count > MaxTxsPerMessage {
		return ruleError(ErrDecodeEnvelope,
			"transaction set count exceeds max allowed")
	}

	s.Txs = make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		envelope, err := wire.ReadVarBytes(r, 0, MaxTxsPerMessage, "envelope")
		if err != nil {
			return err
		}
		s.Txs = append(s.Txs, envelope)
	}
	return nil
}

// ToWire serializes the set's current order -- no sorting is applied.
func (t *TxSetFrame) ToWire() *WireTransactionSet {
	out := &WireTransactionSet{
		PreviousLedgerHash: t.previousLedgerHash,
		Txs:                make([][]byte, len(t.transactions)),
	}
	for i, tx := range t.transactions {
		out.Txs[i] = tx.Envelope()
	}
	return out
}

// FromWire reconstructs a TxSetFrame from its wire representation,
// using factory to turn each envelope back into a Transaction. The
// resulting frame preserves wire order and is not guaranteed canonical
// until SortForHash runs.
func FromWire(networkID chainhash.Hash, factory TransactionFactory, wireSet *WireTransactionSet) (*TxSetFrame, error) {
	t := &TxSetFrame{previousLedgerHash: wireSet.PreviousLedgerHash}
	for _, envelope := range wireSet.Txs {
		tx, err := factory.FromWire(networkID, envelope)
		if err != nil {
			return nil, ruleError(ErrDecodeEnvelope, err.Error())
		}
		t.transactions = append(t.transactions, tx)
	}
	return t, nil
}
