// Copyright (c) 2024 The txset developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txset

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// hashLess reports whether a sorts strictly before b under
// lexicographic byte order. sortForHash and checkOrTrim's canonical
// order check both rely on this, never on any language-level < that
// chainhash.Hash does not define.
func hashLess(a, b chainhash.Hash) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// lessThanXored reports whether (a XOR k) sorts strictly before
// (b XOR k). sortForApply uses it to randomize cross-account ordering
// with a value -- the set's own content hash -- that submitters cannot
// predict before every transaction in the set is known.
func lessThanXored(a, b, k chainhash.Hash) bool {
	var xa, xb chainhash.Hash
	for i := range k {
		xa[i] = a[i] ^ k[i]
		xb[i] = b[i] ^ k[i]
	}
	return bytes.Compare(xa[:], xb[:]) < 0
}
