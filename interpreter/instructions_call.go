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
	"github.com/witnesslabs/wevm/witness"
)

func opReturn(f *frame) wevm.OperationResult {
	off, size, fee, ok := f.memoryRange(f.stack.peekN(0), f.stack.peekN(1))
	if !ok {
		return haltOp(wevm.InsufficientGas)
	}
	if !f.affordable(fee) {
		return haltOp(wevm.InsufficientGas)
	}
	f.stack.pop()
	f.stack.pop()
	f.memory.grow(off, size)
	f.output = make(wevm.Data, size)
	copy(f.output, f.memory.getSlice(off, size))
	f.state = wevm.CompletedSuccess
	return pcResult(fee)
}

func opRevert(f *frame) wevm.OperationResult {
	off, size, fee, ok := f.memoryRange(f.stack.peekN(0), f.stack.peekN(1))
	if !ok {
		return haltOp(wevm.InsufficientGas)
	}
	if !f.affordable(fee) {
		return haltOp(wevm.InsufficientGas)
	}
	f.stack.pop()
	f.stack.pop()
	f.memory.grow(off, size)
	f.revertReason = make(wevm.Data, size)
	copy(f.revertReason, f.memory.getSlice(off, size))
	f.state = wevm.Revert
	return pcResult(fee)
}

// spawnChild suspends the frame, requests a child frame from the call
// orchestrator, and resumes. A missing orchestrator or an orchestrator
// error is reported as a failed child that consumed its entire gas stipend.
func (f *frame) spawnChild(kind wevm.CallKind, params wevm.CallParameters) wevm.CallResult {
	if f.spawner == nil {
		return wevm.CallResult{Success: false}
	}
	f.state = wevm.CodeSuspended
	res, err := f.spawner.Spawn(kind, params)
	f.state = wevm.CodeExecuting
	if err != nil {
		return wevm.CallResult{Success: false}
	}
	return res
}

// genericCall implements CALL, CALLCODE, DELEGATECALL and STATICCALL.
func genericCall(f *frame, kind wevm.CallKind) wevm.OperationResult {
	hasValue := kind == wevm.Call || kind == wevm.CallCode
	gasLimit := f.stack.peekN(0)
	address := wevm.Address(f.stack.peekN(1).Bytes20())
	operands := 2
	value := uint256.Int{}
	if hasValue {
		value = *f.stack.peekN(2)
		operands = 3
	}
	inOffset := f.stack.peekN(operands)
	inSize := f.stack.peekN(operands + 1)
	outOffset := f.stack.peekN(operands + 2)
	outSize := f.stack.peekN(operands + 3)

	if kind == wevm.Call && f.params.Static && !value.IsZero() {
		return haltOp(wevm.IllegalStateChange)
	}

	inOff, inLen, inFee, ok := f.memoryRange(inOffset, inSize)
	if !ok {
		return haltOp(wevm.InsufficientGas)
	}
	outOff, outLen, outFee, ok := f.memoryRange(outOffset, outSize)
	if !ok {
		return haltOp(wevm.InsufficientGas)
	}
	// The two ranges overlap in cost; expanding to the larger one covers both.
	fee := inFee
	if outFee > fee {
		fee = outFee
	}

	entry := f.store.FindAccount(address)
	baseCost := f.store.MarkAccountWarm(entry) + fee
	if hasValue && !value.IsZero() {
		baseCost += CallValueTransferGas
		// Transfers into non-existing accounts pay for their creation.
		if kind == wevm.Call && entry == nil {
			baseCost += CallNewAccountGas
		}
	}
	if !f.affordable(baseCost) {
		return haltOp(wevm.InsufficientGas)
	}
	forwarded := callGas(f.gas, baseCost, gasLimit)

	// All operands are accounted for; commit the stack and memory changes.
	for i := 0; i < operands+4; i++ {
		f.stack.pop()
	}
	f.memory.grow(inOff, inLen)
	f.memory.grow(outOff, outLen)

	input := make(wevm.Data, inLen)
	copy(input, f.memory.getSlice(inOff, inLen))

	success := f.executeCall(kind, address, entry, value, input, forwarded, baseCost)

	outcome := f.stack.pushUndefined()
	if success {
		outcome.SetOne()
	} else {
		outcome.Clear()
	}
	if n := uint64(len(f.returnData)); n > 0 && outLen > 0 {
		if n > outLen {
			n = outLen
		}
		copy(f.memory.getSlice(outOff, n), f.returnData[:n])
	}
	charged := baseCost + forwarded - f.lastCallReturnedGas
	return result(charged)
}

// executeCall performs the balance and depth checks of a call and runs the
// child frame. It leaves the gas returned by the child (capped at the
// forwarded amount) in lastCallReturnedGas for the handler to report.
func (f *frame) executeCall(kind wevm.CallKind, address wevm.Address, entry *witness.AccountEntry, value uint256.Int, input wevm.Data, forwarded, baseCost wevm.Gas) bool {
	f.lastCallReturnedGas = forwarded
	f.returnData = nil

	if f.params.Depth >= 1024 {
		return false
	}
	caller := f.store.FindAccount(f.params.Recipient)
	if !value.IsZero() {
		balance := wevm.Word{}
		if caller != nil {
			balance = caller.Balance
		}
		if balance.Cmp(wevm.WordFromUint256(&value)) < 0 {
			return false
		}
	}

	childGas := forwarded
	if !value.IsZero() {
		childGas += CallStipend
	}

	params := wevm.CallParameters{
		Sender:      f.params.Recipient,
		Recipient:   address,
		Value:       wevm.WordFromUint256(&value),
		Input:       input,
		Gas:         childGas,
		CodeAddress: address,
	}
	switch kind {
	case wevm.CallCode:
		params.Recipient = f.params.Recipient
	case wevm.DelegateCall:
		params.Recipient = f.params.Recipient
		params.Sender = f.params.Sender
		params.Value = f.params.Value
	case wevm.StaticCall:
		params.Value = wevm.Word{}
	}

	res := f.spawnChild(kind, params)
	f.returnData = res.Output
	f.refund += res.GasRefund

	// Unspent stipend is not credited back; the parent only recovers gas it
	// actually forwarded.
	returned := res.GasLeft
	if returned > forwarded {
		returned = forwarded
	}
	if returned < 0 {
		returned = 0
	}
	f.lastCallReturnedGas = returned
	return res.Success
}

func opCall(f *frame) wevm.OperationResult {
	return genericCall(f, wevm.Call)
}

func opCallCode(f *frame) wevm.OperationResult {
	return genericCall(f, wevm.CallCode)
}

func opDelegateCall(f *frame) wevm.OperationResult {
	return genericCall(f, wevm.DelegateCall)
}

func opStaticCall(f *frame) wevm.OperationResult {
	return genericCall(f, wevm.StaticCall)
}

// genericCreate implements CREATE and CREATE2.
func genericCreate(f *frame, kind wevm.CallKind) wevm.OperationResult {
	if f.params.Static {
		return haltOp(wevm.IllegalStateChange)
	}
	value := f.stack.peekN(0)
	offset := f.stack.peekN(1)
	size := f.stack.peekN(2)
	salt := wevm.Hash{}
	operands := 3
	if kind == wevm.Create2 {
		salt = f.stack.peekN(3).Bytes32()
		operands = 4
	}

	off, length, fee, ok := f.memoryRange(offset, size)
	if !ok {
		return haltOp(wevm.InsufficientGas)
	}
	if length > MaxInitCodeSize {
		return haltOp(wevm.CodeTooLarge)
	}
	cost := CreateGas + initCodeCost(length) + fee
	if kind == wevm.Create2 {
		// CREATE2 hashes the init code to derive the address.
		cost += Keccak256WordGas * wevm.Gas(sizeInWords(length))
	}
	if !f.affordable(cost) {
		return haltOp(wevm.InsufficientGas)
	}
	// Creates forward all but 1/64th of the remaining gas, per EIP-150.
	available := f.gas - cost
	forwarded := available - available/64

	for i := 0; i < operands; i++ {
		f.stack.pop()
	}
	f.memory.grow(off, length)
	initCode := make(wevm.Data, length)
	copy(initCode, f.memory.getSlice(off, length))

	success, created := f.executeCreate(kind, value, initCode, salt, forwarded)

	outcome := f.stack.pushUndefined()
	if success {
		outcome.SetBytes20(created[:])
	} else {
		outcome.Clear()
	}
	charged := cost + forwarded - f.lastCallReturnedGas
	return result(charged)
}

func (f *frame) executeCreate(kind wevm.CallKind, value *uint256.Int, initCode wevm.Data, salt wevm.Hash, forwarded wevm.Gas) (bool, wevm.Address) {
	f.lastCallReturnedGas = forwarded
	f.returnData = nil

	if f.params.Depth >= 1024 {
		return false, wevm.Address{}
	}
	caller := f.store.FindAccount(f.params.Recipient)
	if !value.IsZero() {
		balance := wevm.Word{}
		if caller != nil {
			balance = caller.Balance
		}
		if balance.Cmp(wevm.WordFromUint256(value)) < 0 {
			return false, wevm.Address{}
		}
	}
	// The creator's nonce increments regardless of the creation outcome.
	if caller != nil {
		f.store.IncrementNonce(caller)
	}

	res := f.spawnChild(kind, wevm.CallParameters{
		Sender: f.params.Recipient,
		Value:  wevm.WordFromUint256(value),
		Input:  initCode,
		Gas:    forwarded,
		Salt:   salt,
	})
	f.refund += res.GasRefund

	returned := res.GasLeft
	if returned > forwarded {
		returned = forwarded
	}
	if returned < 0 {
		returned = 0
	}
	f.lastCallReturnedGas = returned

	if !res.Success {
		// A reverting creation exposes its revert data to the parent.
		f.returnData = res.Output
		return false, wevm.Address{}
	}
	f.created = append(f.created, res.CreatedAddress)
	return true, res.CreatedAddress
}

func opCreate(f *frame) wevm.OperationResult {
	return genericCreate(f, wevm.Create)
}

func opCreate2(f *frame) wevm.OperationResult {
	return genericCreate(f, wevm.Create2)
}
