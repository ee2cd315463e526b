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
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/witnesslabs/wevm"
)

// codeAnalysis holds derived information about a code blob that is worth
// computing once and reusing across executions, currently the set of valid
// jump destinations.
type codeAnalysis struct {
	jumpdests bitvec
}

// analyzeCode scans the code once and marks every JUMPDEST byte that is not
// part of the immediate data of a preceding PUSH instruction.
func analyzeCode(code wevm.Code) *codeAnalysis {
	bits := newBitvec(len(code))
	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			bits.set(pc)
			pc++
			continue
		}
		if PUSH1 <= op && op <= PUSH32 {
			pc += int(op-PUSH1) + 2
			continue
		}
		pc++
	}
	return &codeAnalysis{jumpdests: bits}
}

// isValidJumpdest reports whether the given destination is an in-bounds
// JUMPDEST opcode outside of push data.
func (a *codeAnalysis) isValidJumpdest(dest int64, codeLength int) bool {
	return dest >= 0 && dest < int64(codeLength) && a.jumpdests.isSet(int(dest))
}

// bitvec is a bit vector with one bit per code byte.
type bitvec []byte

func newBitvec(size int) bitvec {
	return make(bitvec, size/8+1)
}

func (b bitvec) set(pos int) {
	b[pos/8] |= 1 << (pos % 8)
}

func (b bitvec) isSet(pos int) bool {
	return b[pos/8]&(1<<(pos%8)) != 0
}

// analysisCache caches code analyses keyed by code hash, so repeated
// executions of the same contract skip the code scan. It is safe for
// concurrent use.
type analysisCache struct {
	cache *lru.Cache[wevm.Hash, *codeAnalysis]
}

func newAnalysisCache(capacity int) (*analysisCache, error) {
	cache, err := lru.New[wevm.Hash, *codeAnalysis](capacity)
	if err != nil {
		return nil, err
	}
	return &analysisCache{cache: cache}, nil
}

// get returns the analysis for the given code, computing and caching it as
// needed. A nil hash disables caching for this code blob.
func (c *analysisCache) get(hash *wevm.Hash, code wevm.Code) *codeAnalysis {
	if hash == nil {
		return analyzeCode(code)
	}
	if analysis, found := c.cache.Get(*hash); found {
		return analysis
	}
	analysis := analyzeCode(code)
	c.cache.Add(*hash, analysis)
	return analysis
}
