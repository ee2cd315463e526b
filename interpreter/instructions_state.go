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
	"github.com/witnesslabs/wevm"
	"github.com/witnesslabs/wevm/witness"
)

// ------------------ Account access ------------------

func opBalance(f *frame) wevm.OperationResult {
	slot := f.stack.peek()
	address := wevm.Address(slot.Bytes20())
	entry := f.store.FindAccount(address)
	cost := f.store.MarkAccountWarm(entry)
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	if entry == nil {
		slot.Clear()
	} else {
		slot.SetBytes32(entry.Balance[:])
	}
	return result(cost)
}

func opSelfBalance(f *frame) wevm.OperationResult {
	value := f.stack.pushUndefined()
	if entry := f.store.FindAccount(f.params.Recipient); entry != nil {
		value.SetBytes32(entry.Balance[:])
	} else {
		value.Clear()
	}
	return result(5)
}

func opExtCodeSize(f *frame) wevm.OperationResult {
	slot := f.stack.peek()
	address := wevm.Address(slot.Bytes20())
	entry := f.store.FindAccount(address)
	cost := f.store.MarkAccountWarm(entry)
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	if entry == nil {
		slot.Clear()
	} else {
		slot.SetUint64(uint64(len(entry.Code)))
	}
	return result(cost)
}

func opExtCodeHash(f *frame) wevm.OperationResult {
	slot := f.stack.peek()
	address := wevm.Address(slot.Bytes20())
	entry := f.store.FindAccount(address)
	cost := f.store.MarkAccountWarm(entry)
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	// Non-existing and empty accounts expose a zero hash, per EIP-1052.
	if entry == nil || entry.Empty() {
		slot.Clear()
	} else {
		slot.SetBytes32(entry.CodeHash[:])
	}
	return result(cost)
}

func opExtCodeCopy(f *frame) wevm.OperationResult {
	address := wevm.Address(f.stack.peekN(0).Bytes20())
	memOffset := f.stack.peekN(1)
	_ = f.stack.peekN(2)
	length := f.stack.peekN(3)

	off, size, fee, ok := f.memoryRange(memOffset, length)
	if !ok {
		return haltOp(wevm.InsufficientGas)
	}
	entry := f.store.FindAccount(address)
	cost := f.store.MarkAccountWarm(entry) + CopyWordGas*wevm.Gas(sizeInWords(size)) + fee
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	f.stack.pop()
	f.stack.pop()
	src := f.stack.pop()
	f.stack.pop()
	if size == 0 {
		return result(cost)
	}
	var code wevm.Code
	if entry != nil {
		code = entry.Code
	}
	start := src.Uint64()
	if !src.IsUint64() {
		start = uint64(len(code))
	}
	f.memory.grow(off, size)
	copy(f.memory.getSlice(off, size), getData(code, start, size))
	return result(cost)
}

// ------------------ Storage ------------------

// findOrAddStorage resolves the slot entry for the current contract address,
// materializing a zero-valued cold entry for slots outside the witness. A
// nil result indicates the witness ran out of capacity, which is fatal.
func (f *frame) findOrAddStorage(key wevm.Key) *witness.StorageEntry {
	if entry := f.store.FindStorage(f.params.Contract, key); entry != nil {
		return entry
	}
	entry, err := f.store.AddStorage(f.params.Contract, key)
	if err != nil {
		return nil
	}
	return entry
}

func opSload(f *frame) wevm.OperationResult {
	slot := f.stack.peek()
	key := wevm.Key(slot.Bytes32())
	entry := f.findOrAddStorage(key)
	if entry == nil {
		return haltOp(wevm.OutOfBounds)
	}
	cost := f.store.MarkStorageWarm(entry)
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	slot.SetBytes32(entry.Value[:])
	return result(cost)
}

func opSstore(f *frame) wevm.OperationResult {
	if f.params.Static {
		return haltOp(wevm.IllegalStateChange)
	}
	// EIP-2200 gas sentry: fail if the remaining gas does not exceed the
	// call stipend, without consuming anything.
	if f.gas <= SstoreSentryGas {
		return haltOp(wevm.InsufficientGas)
	}
	key := wevm.Key(f.stack.peekN(0).Bytes32())
	value := wevm.Word(f.stack.peekN(1).Bytes32())
	entry := f.findOrAddStorage(key)
	if entry == nil {
		return haltOp(wevm.OutOfBounds)
	}
	cost, refund := gasSStore(entry, value)
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	f.stack.pop()
	f.stack.pop()
	entry.Value = value
	f.refund += refund
	return result(cost)
}

func opTload(f *frame) wevm.OperationResult {
	slot := f.stack.peek()
	value := f.getTransient(wevm.Key(slot.Bytes32()))
	slot.SetBytes32(value[:])
	return result(100)
}

func opTstore(f *frame) wevm.OperationResult {
	if f.params.Static {
		return haltOp(wevm.IllegalStateChange)
	}
	key := f.stack.pop()
	value := f.stack.pop()
	f.setTransient(wevm.Key(key.Bytes32()), wevm.Word(value.Bytes32()))
	return result(100)
}

// ------------------ Logging ------------------

// makeLog builds the handler for LOG0..LOG4.
func makeLog(topicCount int) func(f *frame) wevm.OperationResult {
	return func(f *frame) wevm.OperationResult {
		if f.params.Static {
			return haltOp(wevm.IllegalStateChange)
		}
		off, size, fee, ok := f.memoryRange(f.stack.peekN(0), f.stack.peekN(1))
		if !ok {
			return haltOp(wevm.InsufficientGas)
		}
		cost := LogGas + LogTopicGas*wevm.Gas(topicCount) + LogDataGas*wevm.Gas(size) + fee
		if !f.affordable(cost) {
			return haltOp(wevm.InsufficientGas)
		}
		f.stack.pop()
		f.stack.pop()
		topics := make([]wevm.Hash, topicCount)
		for i := 0; i < topicCount; i++ {
			topics[i] = f.stack.pop().Bytes32()
		}
		f.memory.grow(off, size)
		data := make(wevm.Data, size)
		copy(data, f.memory.getSlice(off, size))
		f.logs = append(f.logs, wevm.Log{
			Address: f.params.Recipient,
			Topics:  topics,
			Data:    data,
		})
		return result(cost)
	}
}

// ------------------ Self destruct ------------------

func opSelfdestruct(f *frame) wevm.OperationResult {
	if f.params.Static {
		return haltOp(wevm.IllegalStateChange)
	}
	beneficiary := wevm.Address(f.stack.peek().Bytes20())
	account := f.store.FindAccount(f.params.Recipient)
	target := f.store.FindAccount(beneficiary)

	cost := SelfdestructGas
	if target == nil || !target.Warm {
		cost += witness.ColdAccountAccessCost
	}
	hasBalance := account != nil && !account.Balance.IsZero()
	if target == nil && hasBalance {
		cost += CreateBySelfdestructGas
	}
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}

	f.stack.pop()
	if target != nil {
		target.Warm = true
	}
	if hasBalance && beneficiary != f.params.Recipient {
		if target == nil {
			var err error
			if target, err = f.store.AddAccount(beneficiary); err != nil {
				return haltOp(wevm.OutOfBounds)
			}
		}
		if err := f.store.TransferValue(account, target, account.Balance); err != nil {
			return haltOp(wevm.OutOfBounds)
		}
	}
	f.recordSelfDestruct(f.params.Recipient)
	f.state = wevm.CompletedSuccess
	return pcResult(cost)
}
