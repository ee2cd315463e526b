// Copyright (c) 2026 Witness Labs
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2030-08-01
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package interpreter

import (
	"math"

	"github.com/holiman/uint256"
	"github.com/witnesslabs/wevm"
)

// Maximum memory size allowed. Expansions beyond this point are priced at
// MaxInt64 gas, which no frame can afford.
const maxMemoryExpansionSize = 0x1FFFFFFFE0

// memory is the byte-addressable linear memory of an execution frame. It
// grows only forward, in 32-byte-aligned increments, with newly exposed
// bytes zero-filled. Expansion is priced quadratically; handlers compute the
// expansion fee through expansionCosts before growing the memory, so the fee
// becomes part of the operation's reported gas cost.
type memory struct {
	store             []byte
	currentMemoryCost wevm.Gas
}

func newMemory() *memory {
	return &memory{}
}

// sizeInWords returns the number of 32-byte words needed to hold the given
// number of bytes.
func sizeInWords(size uint64) uint64 {
	return (size + 31) / 32
}

func toValidMemorySize(size uint64) uint64 {
	fullWordsSize := sizeInWords(size) * 32
	if size != 0 && fullWordsSize < size {
		return math.MaxUint64
	}
	return fullWordsSize
}

func (m *memory) length() uint64 {
	return uint64(len(m.store))
}

// expansionCosts returns the fee for growing the memory to hold size bytes.
// A memory already large enough is free. Sizes beyond the expansion ceiling
// are priced at MaxInt64, turning them into out-of-gas conditions.
func (m *memory) expansionCosts(size uint64) wevm.Gas {
	if m.length() >= size {
		return 0
	}
	size = toValidMemorySize(size)

	if size > maxMemoryExpansionSize {
		return wevm.Gas(math.MaxInt64)
	}

	words := sizeInWords(size)
	newCosts := wevm.Gas((words*words)/512 + (3 * words))
	return newCosts - m.currentMemoryCost
}

// rangeCosts returns the expansion fee for accessing size bytes starting at
// offset. A false result indicates that offset+size overflows, which is
// treated by callers as an unpayable access.
func (m *memory) rangeCosts(offset, size uint64) (wevm.Gas, bool) {
	if size == 0 {
		return 0, true
	}
	needed := offset + size
	if needed < offset {
		return 0, false
	}
	return m.expansionCosts(needed), true
}

// grow expands the memory to cover size bytes at offset without charging gas.
// The caller must have charged the fee reported by rangeCosts beforehand.
func (m *memory) grow(offset, size uint64) {
	if size == 0 {
		return
	}
	needed := toValidMemorySize(offset + size)
	if length := m.length(); length < needed {
		m.currentMemoryCost += m.expansionCosts(needed)
		m.store = append(m.store, make([]byte, needed-length)...)
	}
}

// getSlice obtains a slice of size bytes from the memory at the given offset.
// The memory must already cover the requested range. The returned slice is
// backed by the memory's internal data; updates to the slice affect the
// memory state. This connection is invalidated by any subsequent memory
// operation that may change the size of the memory.
func (m *memory) getSlice(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// setByte writes a single byte at the given offset. The memory must already
// cover the offset.
func (m *memory) setByte(offset uint64, value byte) {
	m.store[offset] = value
}

// setWord writes a 32-byte word at the given offset. The memory must already
// cover the range.
func (m *memory) setWord(offset uint64, value *uint256.Int) {
	// Inlining and unrolling value.WriteToSlice(..) leads to a 7x speedup.
	dest := m.store[offset : offset+32]
	dest[31] = byte(value[0])
	dest[30] = byte(value[0] >> 8)
	dest[29] = byte(value[0] >> 16)
	dest[28] = byte(value[0] >> 24)
	dest[27] = byte(value[0] >> 32)
	dest[26] = byte(value[0] >> 40)
	dest[25] = byte(value[0] >> 48)
	dest[24] = byte(value[0] >> 56)

	dest[23] = byte(value[1])
	dest[22] = byte(value[1] >> 8)
	dest[21] = byte(value[1] >> 16)
	dest[20] = byte(value[1] >> 24)
	dest[19] = byte(value[1] >> 32)
	dest[18] = byte(value[1] >> 40)
	dest[17] = byte(value[1] >> 48)
	dest[16] = byte(value[1] >> 56)

	dest[15] = byte(value[2])
	dest[14] = byte(value[2] >> 8)
	dest[13] = byte(value[2] >> 16)
	dest[12] = byte(value[2] >> 24)
	dest[11] = byte(value[2] >> 32)
	dest[10] = byte(value[2] >> 40)
	dest[9] = byte(value[2] >> 48)
	dest[8] = byte(value[2] >> 56)

	dest[7] = byte(value[3])
	dest[6] = byte(value[3] >> 8)
	dest[5] = byte(value[3] >> 16)
	dest[4] = byte(value[3] >> 24)
	dest[3] = byte(value[3] >> 32)
	dest[2] = byte(value[3] >> 40)
	dest[1] = byte(value[3] >> 48)
	dest[0] = byte(value[3] >> 56)
}

// readWord reads a 32-byte word from the memory at the given offset into the
// provided target. The memory must already cover the range.
func (m *memory) readWord(offset uint64, target *uint256.Int) {
	target.SetBytes32(m.store[offset : offset+32])
}

// copyData copies data from the memory, starting at the given offset, to the
// target slice, padding with zeros where the requested range extends past
// the memory size.
func (m *memory) copyData(offset uint64, target []byte) {
	if m.length() < offset {
		clearBytes(target)
		return
	}

	// Copy what is available.
	covered := copy(target, m.store[offset:])

	// Pad the rest.
	clearBytes(target[covered:])
}

func clearBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
