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
	"testing"

	"github.com/witnesslabs/wevm"
)

func TestAnalyzeCode_FindsJumpdestsOutsidePushData(t *testing.T) {
	tests := map[string]struct {
		code  []byte
		valid []int64
	}{
		"plain jumpdest": {
			code:  []byte{byte(JUMPDEST)},
			valid: []int64{0},
		},
		"jumpdest after push": {
			code:  []byte{byte(PUSH1), 0x01, byte(JUMPDEST)},
			valid: []int64{2},
		},
		"jumpdest inside push data is skipped": {
			code:  []byte{byte(PUSH2), byte(JUMPDEST), byte(JUMPDEST), byte(JUMPDEST)},
			valid: []int64{3},
		},
		"push32 swallows a full word": {
			code:  append(append([]byte{byte(PUSH32)}, make([]byte, 32)...), byte(JUMPDEST)),
			valid: []int64{33},
		},
		"truncated push at the end": {
			code:  []byte{byte(JUMPDEST), byte(PUSH2), 0x5b},
			valid: []int64{0},
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			analysis := analyzeCode(test.code)
			valid := map[int64]bool{}
			for _, pos := range test.valid {
				valid[pos] = true
			}
			for pos := int64(0); pos < int64(len(test.code)); pos++ {
				if want, got := valid[pos], analysis.isValidJumpdest(pos, len(test.code)); want != got {
					t.Errorf("unexpected validity of destination %d, wanted %t, got %t", pos, want, got)
				}
			}
		})
	}
}

func TestAnalysis_OutOfBoundsDestinationsAreInvalid(t *testing.T) {
	code := []byte{byte(JUMPDEST)}
	analysis := analyzeCode(code)
	if analysis.isValidJumpdest(-1, len(code)) {
		t.Errorf("negative destination should be invalid")
	}
	if analysis.isValidJumpdest(1, len(code)) {
		t.Errorf("destination past the code end should be invalid")
	}
}

func TestAnalysisCache_ReusesAnalysesByCodeHash(t *testing.T) {
	cache, err := newAnalysisCache(16)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	code := wevm.Code{byte(JUMPDEST)}
	hash := Keccak256(code)

	first := cache.get(&hash, code)
	second := cache.get(&hash, code)
	if first != second {
		t.Errorf("expected the cached analysis to be reused")
	}
}

func TestAnalysisCache_NilHashSkipsCaching(t *testing.T) {
	cache, err := newAnalysisCache(16)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	code := wevm.Code{byte(JUMPDEST)}

	first := cache.get(nil, code)
	second := cache.get(nil, code)
	if first == second {
		t.Errorf("expected uncached analyses to be distinct instances")
	}
	if !first.isValidJumpdest(0, len(code)) {
		t.Errorf("uncached analysis should still be correct")
	}
}
