// Copyright (c) 2024 The txset developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txset implements the transaction set frame: the
// consensus-critical structure that collects candidate transactions
// proposed for inclusion in the next ledger of a replicated-ledger
// network.
//
// A TxSetFrame is responsible for producing a canonical, deterministic
// content hash, validating internal consistency (per-account sequence
// numbering and fee solvency), trimming to the ledger's capacity via a
// fee-ranked surge-pricing filter, and producing a deterministic but
// unpredictable apply order. Every operation in this package is
// consensus-binding: any divergence in sorting, hashing, trimming, or
// validation between replicas running this code causes a fork.
//
// TxSetFrame is a single-owner, non-concurrency-safe value. Callers
// that need concurrent readers must hold distinct copies or provide
// their own synchronization.
package txset
