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
	"bytes"
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/witnesslabs/wevm"
)

func TestMemory_ExpansionCostsFollowTheQuadraticSchedule(t *testing.T) {
	tests := map[string]struct {
		size uint64
		want wevm.Gas
	}{
		"empty":                {0, 0},
		"one byte":             {1, 3},
		"one word":             {32, 3},
		"two words":            {64, 6},
		"unaligned size":       {33, 6},
		"32 words":             {1024, 98},
		"one KiB plus one":     {1025, 105},
		"largest valid size":   {maxMemoryExpansionSize, 36028809887088637},
		"beyond the ceiling":   {maxMemoryExpansionSize + 1, math.MaxInt64},
		"absurdly large value": {math.MaxUint64, math.MaxInt64},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := newMemory()
			if got := m.expansionCosts(test.size); got != test.want {
				t.Errorf("unexpected expansion cost, wanted %d, got %d", test.want, got)
			}
		})
	}
}

func TestMemory_ExpansionCostsAreChargedOnlyOnce(t *testing.T) {
	m := newMemory()
	fee := m.expansionCosts(64)
	m.grow(0, 64)
	if want, got := wevm.Gas(0), m.expansionCosts(64); got != want {
		t.Errorf("re-expanding covered memory should be free, wanted %d, got %d", want, got)
	}
	if want, got := fee, m.currentMemoryCost; got != want {
		t.Errorf("grow did not register the charged fee, wanted %d, got %d", want, got)
	}
	// A second expansion is only charged the difference to the fee already paid.
	if want, got := wevm.Gas(98-6), m.expansionCosts(1024); got != want {
		t.Errorf("unexpected follow-up expansion cost, wanted %d, got %d", want, got)
	}
}

func TestMemory_RangeCostsDetectOffsetOverflow(t *testing.T) {
	m := newMemory()
	if _, ok := m.rangeCosts(math.MaxUint64, 2); ok {
		t.Errorf("overflowing range should be rejected")
	}
	if fee, ok := m.rangeCosts(math.MaxUint64, 0); !ok || fee != 0 {
		t.Errorf("empty ranges are always free, got fee %d, ok %t", fee, ok)
	}
}

func TestMemory_GrowZeroFillsNewBytes(t *testing.T) {
	m := newMemory()
	m.grow(0, 32)
	m.setByte(5, 0xff)
	m.grow(0, 64)

	if want, got := uint64(64), m.length(); want != got {
		t.Fatalf("unexpected memory size, wanted %d, got %d", want, got)
	}
	data := m.getSlice(0, 64)
	for i, b := range data {
		want := byte(0)
		if i == 5 {
			want = 0xff
		}
		if b != want {
			t.Errorf("unexpected byte at offset %d, wanted %#x, got %#x", i, want, b)
		}
	}
}

func TestMemory_GrowRoundsToFullWords(t *testing.T) {
	m := newMemory()
	m.grow(0, 1)
	if want, got := uint64(32), m.length(); want != got {
		t.Errorf("memory must grow in words, wanted size %d, got %d", want, got)
	}
	m.grow(30, 5)
	if want, got := uint64(64), m.length(); want != got {
		t.Errorf("memory must grow in words, wanted size %d, got %d", want, got)
	}
}

func TestMemory_WordsCanBeWrittenAndRead(t *testing.T) {
	m := newMemory()
	m.grow(0, 64)

	value := uint256.NewInt(0).SetBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	m.setWord(16, value)

	restored := uint256.NewInt(0)
	m.readWord(16, restored)
	if value.Cmp(restored) != 0 {
		t.Errorf("failed to restore word, wanted %v, got %v", value, restored)
	}
}

func TestMemory_CopyDataPadsBeyondTheMemorySize(t *testing.T) {
	m := newMemory()
	m.grow(0, 32)
	m.setByte(31, 0xaa)

	target := make([]byte, 4)
	m.copyData(30, target)
	if want := []byte{0, 0xaa, 0, 0}; !bytes.Equal(target, want) {
		t.Errorf("unexpected copy result, wanted %x, got %x", want, target)
	}

	for i := range target {
		target[i] = 0xff
	}
	m.copyData(100, target)
	if want := []byte{0, 0, 0, 0}; !bytes.Equal(target, want) {
		t.Errorf("copy past the memory size must zero the target, wanted %x, got %x", want, target)
	}
}

func TestSizeInWords_RoundsUp(t *testing.T) {
	tests := map[uint64]uint64{0: 0, 1: 1, 31: 1, 32: 1, 33: 2, 64: 2}
	for size, want := range tests {
		if got := sizeInWords(size); got != want {
			t.Errorf("unexpected word count for %d bytes, wanted %d, got %d", size, want, got)
		}
	}
}
