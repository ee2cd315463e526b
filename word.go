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

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/holiman/uint256"
)

// Word represents an unsigned 256-bit machine word, the universal operand
// type of the execution engine. Words are stored in big-endian byte order,
// and all arithmetic wraps around modulo 2^256.
type Word [32]byte

// NewWord creates a new Word instance from up to 4 uint64 arguments. The
// arguments are given in the order from most significant to least significant
// by padding leading zeros as needed. No argument results in a word of zero.
func NewWord(args ...uint64) (result Word) {
	if len(args) > 4 {
		panic("too many arguments")
	}
	offset := 4 - len(args)
	for i := 0; i < len(args) && i < 4; i++ {
		start := (offset * 8) + i*8
		end := start + 8
		binary.BigEndian.PutUint64(result[start:end], args[i])
	}
	return
}

// WordFromBytes creates a Word from a big-endian byte slice of at most 32
// bytes, padding leading zeros as needed. Longer inputs are rejected.
func WordFromBytes(data []byte) (Word, error) {
	var result Word
	if len(data) > 32 {
		return result, fmt.Errorf("word source too long, wanted at most 32 bytes, got %d", len(data))
	}
	copy(result[32-len(data):], data)
	return result, nil
}

// WordFromUint256 converts a *uint256.Int to a Word.
// If the input is nil, it returns 0.
func WordFromUint256(value *uint256.Int) (result Word) {
	if value == nil {
		return result
	}
	return value.Bytes32()
}

func (w Word) ToUint256() *uint256.Int {
	return new(uint256.Int).SetBytes(w[:])
}

func (w Word) ToBig() *big.Int {
	return new(big.Int).SetBytes(w[:])
}

// Bytes returns the canonical big-endian 32-byte representation of the word.
func (w Word) Bytes() []byte {
	res := make([]byte, 32)
	copy(res, w[:])
	return res
}

// Uint64 returns the least significant 64 bits of the word and whether the
// word fits into a uint64 without truncation.
func (w Word) Uint64() (uint64, bool) {
	fits := true
	for _, b := range w[:24] {
		if b != 0 {
			fits = false
			break
		}
	}
	return binary.BigEndian.Uint64(w[24:32]), fits
}

func (w Word) IsZero() bool {
	return w == Word{}
}

func (w Word) Cmp(o Word) int {
	return bytes.Compare(w[:], o[:])
}

func (w Word) String() string {
	return w.ToUint256().String()
}

func (w Word) MarshalText() ([]byte, error) {
	return bytesToText(w[:])
}

func (w *Word) UnmarshalText(data []byte) error {
	return textToBytes(w[:], data)
}

// Add computes a+b, wrapping around modulo 2^256.
func (w Word) Add(o Word) (z Word) {
	res, carry := bits.Add64(w.limb(0), o.limb(0), 0)
	binary.BigEndian.PutUint64(z[24:32], res)

	res, carry = bits.Add64(w.limb(1), o.limb(1), carry)
	binary.BigEndian.PutUint64(z[16:24], res)

	res, carry = bits.Add64(w.limb(2), o.limb(2), carry)
	binary.BigEndian.PutUint64(z[8:16], res)

	res, _ = bits.Add64(w.limb(3), o.limb(3), carry)
	binary.BigEndian.PutUint64(z[0:8], res)

	return z
}

// Sub computes a-b, wrapping around modulo 2^256.
func (w Word) Sub(o Word) (z Word) {
	res, carry := bits.Sub64(w.limb(0), o.limb(0), 0)
	binary.BigEndian.PutUint64(z[24:32], res)

	res, carry = bits.Sub64(w.limb(1), o.limb(1), carry)
	binary.BigEndian.PutUint64(z[16:24], res)

	res, carry = bits.Sub64(w.limb(2), o.limb(2), carry)
	binary.BigEndian.PutUint64(z[8:16], res)

	res, _ = bits.Sub64(w.limb(3), o.limb(3), carry)
	binary.BigEndian.PutUint64(z[0:8], res)

	return z
}

// Mul computes a*b, wrapping around modulo 2^256.
func (w Word) Mul(o Word) Word {
	return WordFromUint256(new(uint256.Int).Mul(w.ToUint256(), o.ToUint256()))
}

// Div computes the integer quotient a/b. Division by zero yields zero.
func (w Word) Div(o Word) Word {
	return WordFromUint256(new(uint256.Int).Div(w.ToUint256(), o.ToUint256()))
}

// Mod computes the remainder a%b. A zero modulus yields zero.
func (w Word) Mod(o Word) Word {
	return WordFromUint256(new(uint256.Int).Mod(w.ToUint256(), o.ToUint256()))
}

func (w Word) And(o Word) (z Word) {
	for i := range z {
		z[i] = w[i] & o[i]
	}
	return
}

func (w Word) Or(o Word) (z Word) {
	for i := range z {
		z[i] = w[i] | o[i]
	}
	return
}

func (w Word) Xor(o Word) (z Word) {
	for i := range z {
		z[i] = w[i] ^ o[i]
	}
	return
}

func (w Word) Not() (z Word) {
	for i := range z {
		z[i] = ^w[i]
	}
	return
}

// Shl shifts the word left by n bits. Shift amounts of 256 or more yield zero.
func (w Word) Shl(n uint) Word {
	if n >= 256 {
		return Word{}
	}
	return WordFromUint256(new(uint256.Int).Lsh(w.ToUint256(), n))
}

// Shr shifts the word right by n bits. Shift amounts of 256 or more yield zero.
func (w Word) Shr(n uint) Word {
	if n >= 256 {
		return Word{}
	}
	return WordFromUint256(new(uint256.Int).Rsh(w.ToUint256(), n))
}

func (w Word) limb(index int) uint64 {
	start := 24 - index*8
	end := start + 8
	return binary.BigEndian.Uint64(w[start:end])
}
