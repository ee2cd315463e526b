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

// Parameters summarizes the inputs required for executing a single frame.
// All fields are provided by the host or the call orchestrator and remain
// immutable for the duration of the execution.
type Parameters struct {
	Block wevm.BlockContext
	Tx    wevm.TxContext

	Type   wevm.FrameType
	Static bool
	Depth  int
	Gas    wevm.Gas

	// Recipient is the account receiving the call and its value.
	Recipient wevm.Address
	// Sender is the account the call originates from.
	Sender wevm.Address
	// Contract is the address whose code is executed and whose storage the
	// frame's storage operations are keyed by.
	Contract wevm.Address

	Value wevm.Word
	Input wevm.Data
	Code  wevm.Code

	// CodeHash, if provided, enables caching of the jump destination
	// analysis of the code across executions.
	CodeHash *wevm.Hash
}

// Result summarizes the outcome of a frame execution as exposed to the host.
// Witness mutations are not part of the result; the host diffs the store it
// provided against the pre-execution state.
type Result struct {
	State      wevm.State
	HaltReason wevm.HaltReason
	GasLeft    wevm.Gas
	GasRefund  wevm.Gas

	// Output is the data produced by a successful RETURN, or the deployment
	// code of a successful creation frame. It is empty for halted frames.
	Output wevm.Data

	// RevertReason carries the memory range captured by REVERT. It is kept
	// distinct from Output, which is discarded on revert.
	RevertReason wevm.Data

	Logs           []wevm.Log
	SelfDestructed []wevm.Address
	Created        []wevm.Address
}

type transientID struct {
	address wevm.Address
	key     wevm.Key
}

// frame is the mutable machine state of one call. It is created at call
// entry, mutated exclusively by opcode handlers and the driver loop, and
// never outlives its call.
type frame struct {
	params   Parameters
	code     wevm.Code
	store    *witness.Store
	spawner  wevm.CallSpawner
	analysis *codeAnalysis

	pc      int32
	section int32
	gas     wevm.Gas
	refund  wevm.Gas
	stack   *stack
	memory  *memory
	state   wevm.State
	halt    wevm.HaltReason

	output       wevm.Data
	returnData   wevm.Data
	revertReason wevm.Data

	// lastCallReturnedGas carries the gas recovered from the most recent
	// child frame from executeCall/executeCreate back to the dispatching
	// handler, which folds it into the operation's net cost.
	lastCallReturnedGas wevm.Gas

	// Side tables synced out to the host at frame exit.
	transient     map[transientID]wevm.Word
	logs          []wevm.Log
	selfDestructs map[wevm.Address]struct{}
	created       []wevm.Address
}

func newFrame(params Parameters, store *witness.Store, spawner wevm.CallSpawner, analysis *codeAnalysis) *frame {
	return &frame{
		params:   params,
		code:     params.Code,
		store:    store,
		spawner:  spawner,
		analysis: analysis,
		gas:      params.Gas,
		stack:    newStack(),
		memory:   newMemory(),
		state:    wevm.NotStarted,
	}
}

// release returns pooled resources. The frame must not be used afterwards.
func (f *frame) release() {
	returnStack(f.stack)
	f.stack = nil
}

// haltWith transitions the frame into an exceptional halt with the given
// reason. The first reason wins; later halts do not overwrite it.
func (f *frame) haltWith(reason wevm.HaltReason) {
	f.state = wevm.ExceptionalHalt
	if f.halt == wevm.None {
		f.halt = reason
	}
}

func (f *frame) getTransient(key wevm.Key) wevm.Word {
	return f.transient[transientID{f.params.Contract, key}]
}

func (f *frame) setTransient(key wevm.Key, value wevm.Word) {
	if f.transient == nil {
		f.transient = make(map[transientID]wevm.Word)
	}
	f.transient[transientID{f.params.Contract, key}] = value
}

func (f *frame) recordSelfDestruct(address wevm.Address) {
	if f.selfDestructs == nil {
		f.selfDestructs = make(map[wevm.Address]struct{})
	}
	f.selfDestructs[address] = struct{}{}
}

func (f *frame) result() Result {
	res := Result{
		State:      f.state,
		HaltReason: f.halt,
		GasLeft:    f.gas,
		GasRefund:  f.refund,
		Logs:       f.logs,
		Created:    f.created,
	}
	switch f.state {
	case wevm.CompletedSuccess:
		res.Output = f.output
	case wevm.Revert:
		res.RevertReason = f.revertReason
	}
	for address := range f.selfDestructs {
		res.SelfDestructed = append(res.SelfDestructed, address)
	}
	return res
}

// ------------------ FrameView ------------------

func (f *frame) PC() int32 {
	return f.pc
}

func (f *frame) Opcode() byte {
	if int(f.pc) >= len(f.code) {
		return 0
	}
	return f.code[f.pc]
}

func (f *frame) GasRemaining() wevm.Gas {
	return f.gas
}

func (f *frame) GasRefund() wevm.Gas {
	return f.refund
}

func (f *frame) StackSize() int {
	return f.stack.len()
}

func (f *frame) StackItem(index int) wevm.Word {
	return wevm.Word(f.stack.peekN(index).Bytes32())
}

func (f *frame) MemorySize() int {
	return int(f.memory.length())
}

func (f *frame) Depth() int {
	return f.params.Depth
}

func (f *frame) State() wevm.State {
	return f.state
}

func (f *frame) Static() bool {
	return f.params.Static
}

func (f *frame) ContractAddress() wevm.Address {
	return f.params.Contract
}
