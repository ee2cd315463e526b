// Copyright (c) 2026 Witness Labs
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2030-08-01
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package wevm

// BlockContext contains information about the block the current transaction
// is part of. It is immutable for the duration of an execution.
type BlockContext struct {
	ChainID     Word
	BlockNumber int64
	Timestamp   int64
	Coinbase    Address
	GasLimit    Gas
	PrevRandao  Hash
	BaseFee     Word
	BlobBaseFee Word

	// BlockHashes resolves the hash of a recent block by number. It may be
	// nil, in which case all block hashes resolve to zero. Only the 256 most
	// recent blocks need to be resolvable.
	BlockHashes func(number int64) Hash
}

// TxContext contains information about the current transaction.
type TxContext struct {
	Origin     Address
	GasPrice   Word
	BlobHashes []Hash
}
