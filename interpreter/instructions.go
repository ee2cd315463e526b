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
	"github.com/holiman/uint256"
	"github.com/witnesslabs/wevm"
)

// result reports a successfully executed operation of the given total cost,
// advancing the program counter by one.
func result(cost wevm.Gas) wevm.OperationResult {
	return wevm.OperationResult{GasCost: cost, PCDelta: 1}
}

// pcResult reports a successfully executed operation that set the program
// counter itself and must not be advanced by the driver.
func pcResult(cost wevm.Gas) wevm.OperationResult {
	return wevm.OperationResult{GasCost: cost, PCDelta: 0}
}

// haltOp aborts the current operation with the given reason. No gas is
// charged for a halting operation.
func haltOp(reason wevm.HaltReason) wevm.OperationResult {
	return wevm.OperationResult{Halt: reason}
}

// affordable reports whether the frame can pay the given cost. Handlers with
// side effects beyond the operand stack must check affordability of their
// full cost before mutating anything.
func (f *frame) affordable(cost wevm.Gas) bool {
	return cost >= 0 && cost <= f.gas
}

// memoryRange resolves an offset/size operand pair into a memory range and
// its expansion fee. ok is false when the range can never be paid for, which
// callers report as an out-of-gas condition.
func (f *frame) memoryRange(offset, size *uint256.Int) (off, length uint64, fee wevm.Gas, ok bool) {
	if size.IsZero() {
		return 0, 0, 0, true
	}
	if !offset.IsUint64() || !size.IsUint64() {
		return 0, 0, 0, false
	}
	fee, ok = f.memory.rangeCosts(offset.Uint64(), size.Uint64())
	if !ok {
		return 0, 0, 0, false
	}
	return offset.Uint64(), size.Uint64(), fee, true
}

// getData returns a slice of size bytes from data starting at the given
// offset, zero-padded past the end of data.
func getData(data []byte, start, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	res := make([]byte, size)
	copy(res, data[start:end])
	return res
}

// ------------------ Arithmetic and logic ------------------

func opAdd(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	b.Add(a, b)
	return result(3)
}

func opMul(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	b.Mul(a, b)
	return result(5)
}

func opSub(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	b.Sub(a, b)
	return result(3)
}

func opDiv(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	b.Div(a, b)
	return result(5)
}

func opSDiv(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	b.SDiv(a, b)
	return result(5)
}

func opMod(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	b.Mod(a, b)
	return result(5)
}

func opSMod(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	b.SMod(a, b)
	return result(5)
}

func opAddMod(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.pop()
	n := f.stack.peek()
	n.AddMod(a, b, n)
	return result(8)
}

func opMulMod(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.pop()
	n := f.stack.peek()
	n.MulMod(a, b, n)
	return result(8)
}

func opExp(f *frame) wevm.OperationResult {
	base := f.stack.peekN(0)
	exponent := f.stack.peekN(1)
	cost := 10 + ExpByteGas*wevm.Gas((exponent.BitLen()+7)/8)
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	f.stack.pop()
	exponent = f.stack.peek()
	exponent.Exp(base, exponent)
	return result(cost)
}

func opSignExtend(f *frame) wevm.OperationResult {
	back := f.stack.pop()
	num := f.stack.peek()
	num.ExtendSign(num, back)
	return result(5)
}

func opLt(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	if a.Lt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return result(3)
}

func opGt(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	if a.Gt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return result(3)
}

func opSlt(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	if a.Slt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return result(3)
}

func opSgt(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	if a.Sgt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return result(3)
}

func opEq(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	if a.Eq(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
	return result(3)
}

func opIszero(f *frame) wevm.OperationResult {
	a := f.stack.peek()
	if a.IsZero() {
		a.SetOne()
	} else {
		a.Clear()
	}
	return result(3)
}

func opAnd(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	b.And(a, b)
	return result(3)
}

func opOr(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	b.Or(a, b)
	return result(3)
}

func opXor(f *frame) wevm.OperationResult {
	a := f.stack.pop()
	b := f.stack.peek()
	b.Xor(a, b)
	return result(3)
}

func opNot(f *frame) wevm.OperationResult {
	a := f.stack.peek()
	a.Not(a)
	return result(3)
}

func opByte(f *frame) wevm.OperationResult {
	position := f.stack.pop()
	value := f.stack.peek()
	value.Byte(position)
	return result(3)
}

func opShl(f *frame) wevm.OperationResult {
	shift := f.stack.pop()
	value := f.stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return result(3)
}

func opShr(f *frame) wevm.OperationResult {
	shift := f.stack.pop()
	value := f.stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return result(3)
}

func opSar(f *frame) wevm.OperationResult {
	shift := f.stack.pop()
	value := f.stack.peek()
	if shift.GtUint64(255) {
		if value.Sign() >= 0 {
			value.Clear()
		} else {
			value.SetAllOne()
		}
		return result(3)
	}
	value.SRsh(value, uint(shift.Uint64()))
	return result(3)
}

func opKeccak256(f *frame) wevm.OperationResult {
	offset, length, fee, ok := f.memoryRange(f.stack.peekN(0), f.stack.peekN(1))
	if !ok {
		return haltOp(wevm.InsufficientGas)
	}
	cost := 30 + Keccak256WordGas*wevm.Gas(sizeInWords(length)) + fee
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	f.memory.grow(offset, length)
	f.stack.pop()
	value := f.stack.peek()
	hash := Keccak256(f.memory.getSlice(offset, length))
	value.SetBytes32(hash[:])
	return result(cost)
}

// ------------------ Stack, memory and flow control ------------------

func opStop(f *frame) wevm.OperationResult {
	f.state = wevm.CompletedSuccess
	return pcResult(0)
}

func opPop(f *frame) wevm.OperationResult {
	f.stack.pop()
	return result(2)
}

func opMload(f *frame) wevm.OperationResult {
	offset := f.stack.peek()
	if !offset.IsUint64() {
		return haltOp(wevm.InsufficientGas)
	}
	fee, ok := f.memory.rangeCosts(offset.Uint64(), 32)
	if !ok {
		return haltOp(wevm.InsufficientGas)
	}
	cost := 3 + fee
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	off := offset.Uint64()
	f.memory.grow(off, 32)
	f.memory.readWord(off, offset)
	return result(cost)
}

func opMstore(f *frame) wevm.OperationResult {
	offset := f.stack.peekN(0)
	if !offset.IsUint64() {
		return haltOp(wevm.InsufficientGas)
	}
	fee, ok := f.memory.rangeCosts(offset.Uint64(), 32)
	if !ok {
		return haltOp(wevm.InsufficientGas)
	}
	cost := 3 + fee
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	off := f.stack.pop().Uint64()
	value := f.stack.pop()
	f.memory.grow(off, 32)
	f.memory.setWord(off, value)
	return result(cost)
}

func opMstore8(f *frame) wevm.OperationResult {
	offset := f.stack.peekN(0)
	if !offset.IsUint64() {
		return haltOp(wevm.InsufficientGas)
	}
	fee, ok := f.memory.rangeCosts(offset.Uint64(), 1)
	if !ok {
		return haltOp(wevm.InsufficientGas)
	}
	cost := 3 + fee
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	off := f.stack.pop().Uint64()
	value := f.stack.pop()
	f.memory.grow(off, 1)
	f.memory.setByte(off, byte(value.Uint64()))
	return result(cost)
}

func opMcopy(f *frame) wevm.OperationResult {
	dst := f.stack.peekN(0)
	src := f.stack.peekN(1)
	length := f.stack.peekN(2)
	if length.IsZero() {
		f.stack.pop()
		f.stack.pop()
		f.stack.pop()
		return result(3)
	}
	if !dst.IsUint64() || !src.IsUint64() || !length.IsUint64() {
		return haltOp(wevm.InsufficientGas)
	}
	size := length.Uint64()
	needed := dst.Uint64()
	if src.Uint64() > needed {
		needed = src.Uint64()
	}
	fee, ok := f.memory.rangeCosts(needed, size)
	if !ok {
		return haltOp(wevm.InsufficientGas)
	}
	cost := 3 + CopyWordGas*wevm.Gas(sizeInWords(size)) + fee
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	dstOff := f.stack.pop().Uint64()
	srcOff := f.stack.pop().Uint64()
	f.stack.pop()
	f.memory.grow(needed, size)
	copy(f.memory.getSlice(dstOff, size), f.memory.getSlice(srcOff, size))
	return result(cost)
}

func opJump(f *frame) wevm.OperationResult {
	dest := f.stack.pop()
	if !dest.IsUint64() || !f.analysis.isValidJumpdest(int64(dest.Uint64()), len(f.code)) {
		return haltOp(wevm.InvalidJumpDestination)
	}
	f.pc = int32(dest.Uint64())
	return pcResult(8)
}

func opJumpi(f *frame) wevm.OperationResult {
	dest := f.stack.pop()
	condition := f.stack.pop()
	if condition.IsZero() {
		return result(10)
	}
	if !dest.IsUint64() || !f.analysis.isValidJumpdest(int64(dest.Uint64()), len(f.code)) {
		return haltOp(wevm.InvalidJumpDestination)
	}
	f.pc = int32(dest.Uint64())
	return pcResult(10)
}

func opJumpdest(f *frame) wevm.OperationResult {
	return result(1)
}

func opPc(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetUint64(uint64(f.pc))
	return result(2)
}

func opMsize(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetUint64(f.memory.length())
	return result(2)
}

func opGas(f *frame) wevm.OperationResult {
	// The pushed value reflects the gas remaining after this operation.
	f.stack.pushUndefined().SetUint64(uint64(f.gas - 2))
	return result(2)
}

func opPush0(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().Clear()
	return result(2)
}

// makePush builds the handler for PUSH1..PUSH32. Push data reaching past the
// end of the code is zero-padded.
func makePush(size int) func(f *frame) wevm.OperationResult {
	return func(f *frame) wevm.OperationResult {
		start := int(f.pc) + 1
		end := start + size
		if end > len(f.code) {
			end = len(f.code)
		}
		var data [32]byte
		copy(data[32-size:], f.code[start:end])
		f.stack.pushUndefined().SetBytes32(data[:])
		return wevm.OperationResult{GasCost: 3, PCDelta: int32(size) + 1}
	}
}

func makeDup(n int) func(f *frame) wevm.OperationResult {
	return func(f *frame) wevm.OperationResult {
		f.stack.dup(n - 1)
		return result(3)
	}
}

func makeSwap(n int) func(f *frame) wevm.OperationResult {
	return func(f *frame) wevm.OperationResult {
		f.stack.swap(n)
		return result(3)
	}
}

func opInvalid(f *frame) wevm.OperationResult {
	return haltOp(wevm.InvalidOperation)
}

// ------------------ Environment ------------------

func opAddress(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetBytes20(f.params.Recipient[:])
	return result(2)
}

func opOrigin(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetBytes20(f.params.Tx.Origin[:])
	return result(2)
}

func opCaller(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetBytes20(f.params.Sender[:])
	return result(2)
}

func opCallValue(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetBytes32(f.params.Value[:])
	return result(2)
}

func opCallDataLoad(f *frame) wevm.OperationResult {
	offset := f.stack.peek()
	if !offset.IsUint64() {
		offset.Clear()
		return result(3)
	}
	data := getData(f.params.Input, offset.Uint64(), 32)
	offset.SetBytes32(data)
	return result(3)
}

func opCallDataSize(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetUint64(uint64(len(f.params.Input)))
	return result(2)
}

func opCodeSize(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetUint64(uint64(len(f.code)))
	return result(2)
}

func opGasPrice(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetBytes32(f.params.Tx.GasPrice[:])
	return result(2)
}

func opReturnDataSize(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetUint64(uint64(len(f.returnData)))
	return result(2)
}

// copyToMemory implements the shared semantics of the *COPY operations:
// charge the copy and expansion fees, grow the memory, and write size bytes
// taken from the given source at srcOffset, zero-padded past its end.
func copyToMemory(f *frame, source []byte, baseCost wevm.Gas) wevm.OperationResult {
	memOffset := f.stack.peekN(0)
	_ = f.stack.peekN(1)
	length := f.stack.peekN(2)
	off, size, fee, ok := f.memoryRange(memOffset, length)
	if !ok {
		return haltOp(wevm.InsufficientGas)
	}
	cost := baseCost + CopyWordGas*wevm.Gas(sizeInWords(size)) + fee
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	f.stack.pop()
	src := f.stack.pop()
	f.stack.pop()
	if size == 0 {
		return result(cost)
	}
	f.memory.grow(off, size)
	start := src.Uint64()
	if !src.IsUint64() {
		start = uint64(len(source))
	}
	copy(f.memory.getSlice(off, size), getData(source, start, size))
	return result(cost)
}

func opCallDataCopy(f *frame) wevm.OperationResult {
	return copyToMemory(f, f.params.Input, 3)
}

func opCodeCopy(f *frame) wevm.OperationResult {
	return copyToMemory(f, f.code, 3)
}

func opReturnDataCopy(f *frame) wevm.OperationResult {
	srcOffset := f.stack.peekN(1)
	length := f.stack.peekN(2)
	// Reading past the end of the return data buffer is a fault, not a
	// zero-padded read.
	end := new(uint256.Int).Add(srcOffset, length)
	if !end.IsUint64() || end.Uint64() > uint64(len(f.returnData)) {
		return haltOp(wevm.OutOfBounds)
	}
	return copyToMemory(f, f.returnData, 3)
}

// ------------------ Block context ------------------

func opBlockhash(f *frame) wevm.OperationResult {
	number := f.stack.peek()
	lower := int64(0)
	if f.params.Block.BlockNumber > 256 {
		lower = f.params.Block.BlockNumber - 256
	}
	if f.params.Block.BlockHashes == nil ||
		!number.IsUint64() ||
		int64(number.Uint64()) < lower ||
		int64(number.Uint64()) >= f.params.Block.BlockNumber {
		number.Clear()
		return result(20)
	}
	hash := f.params.Block.BlockHashes(int64(number.Uint64()))
	number.SetBytes32(hash[:])
	return result(20)
}

func opCoinbase(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetBytes20(f.params.Block.Coinbase[:])
	return result(2)
}

func opTimestamp(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetUint64(uint64(f.params.Block.Timestamp))
	return result(2)
}

func opNumber(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetUint64(uint64(f.params.Block.BlockNumber))
	return result(2)
}

func opPrevRandao(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetBytes32(f.params.Block.PrevRandao[:])
	return result(2)
}

func opGasLimit(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetUint64(uint64(f.params.Block.GasLimit))
	return result(2)
}

func opChainId(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetBytes32(f.params.Block.ChainID[:])
	return result(2)
}

func opBaseFee(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetBytes32(f.params.Block.BaseFee[:])
	return result(2)
}

func opBlobHash(f *frame) wevm.OperationResult {
	index := f.stack.peek()
	if index.IsUint64() && index.Uint64() < uint64(len(f.params.Tx.BlobHashes)) {
		hash := f.params.Tx.BlobHashes[index.Uint64()]
		index.SetBytes32(hash[:])
	} else {
		index.Clear()
	}
	return result(3)
}

func opBlobBaseFee(f *frame) wevm.OperationResult {
	f.stack.pushUndefined().SetBytes32(f.params.Block.BlobBaseFee[:])
	return result(2)
}
