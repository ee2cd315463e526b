// Copyright (c) 2026 Witness Labs
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2030-08-01
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package interpreter implements the execution core of the EVM: the opcode
// dispatch loop, the stack and memory machine, gas metering, and the
// exceptional-halt state machine. It runs against a pre-loaded witness
// store, so no operation ever calls back into external state storage.
package interpreter

import (
	"fmt"

	"github.com/witnesslabs/wevm"
	"github.com/witnesslabs/wevm/witness"
)

const (
	// defaultCodeCacheCapacity is the number of code analyses kept across
	// executions when the configuration does not specify a capacity.
	defaultCodeCacheCapacity = 1024

	// maxCodeLength bounds the code accepted for execution. Offsets into
	// the code must fit a signed 32-bit program counter.
	maxCodeLength = 1<<31 - 1
)

// Config customizes an Interpreter instance.
type Config struct {
	// Tracer, if set, observes every executed operation.
	Tracer wevm.Tracer

	// Spawner handles the child frames requested by call and create
	// operations. Without a spawner, all calls and creates fail as if the
	// child frame had halted.
	Spawner wevm.CallSpawner

	// CodeCacheCapacity is the number of code analyses cached across
	// executions; 0 selects a default.
	CodeCacheCapacity int
}

// Interpreter executes EVM byte-code against a witness store. Instances are
// safe for concurrent use; each Run gets its own frame, while the code
// analysis cache is shared.
type Interpreter struct {
	tracer   wevm.Tracer
	spawner  wevm.CallSpawner
	analyses *analysisCache
}

// New creates an Interpreter with the given configuration.
func New(config Config) (*Interpreter, error) {
	capacity := config.CodeCacheCapacity
	if capacity <= 0 {
		capacity = defaultCodeCacheCapacity
	}
	analyses, err := newAnalysisCache(capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to set up code analysis cache: %w", err)
	}
	return &Interpreter{
		tracer:   config.Tracer,
		spawner:  config.Spawner,
		analyses: analyses,
	}, nil
}

// Run executes the code provided by the parameters against the given
// witness store and returns the execution result. The resulting error is
// nil whenever the code was correctly executed, even if the execution ended
// in a halt or a revert; a non-nil error indicates invalid inputs, in which
// case the result is undefined.
func (in *Interpreter) Run(params Parameters, store *witness.Store) (Result, error) {
	if store == nil {
		return Result{}, fmt.Errorf("missing witness store")
	}
	if len(params.Code) > maxCodeLength {
		return Result{}, fmt.Errorf("code size %d exceeds maximum of %d", len(params.Code), maxCodeLength)
	}
	if params.Gas < 0 {
		return Result{}, fmt.Errorf("negative gas stipend %d", params.Gas)
	}

	frame := newFrame(params, store, in.spawner, in.analyses.get(params.CodeHash, params.Code))
	defer frame.release()

	in.exec(frame)
	return frame.result(), nil
}

// exec is the driver loop. Each iteration fetches the opcode at the current
// program counter, validates stack bounds and the statically known gas
// floor, dispatches the handler, charges the reported cost, and advances
// the program counter. Handlers report failures through their result; the
// loop owns all state transitions out of CodeExecuting except the terminal
// states set by halting instructions.
func (in *Interpreter) exec(f *frame) {
	f.state = wevm.CodeExecuting
	for f.state == wevm.CodeExecuting {
		// Running past the end of the code is an implicit stop.
		if int(f.pc) >= len(f.code) {
			f.state = wevm.CompletedSuccess
			return
		}
		if f.gas < 0 {
			f.haltWith(wevm.InsufficientGas)
			return
		}

		if in.tracer != nil {
			in.tracer.TracePreExecution(f)
		}

		op := &instructionSet[f.code[f.pc]]
		if f.stack.len() < op.minStack {
			f.haltWith(wevm.StackUnderflow)
			return
		}
		if f.stack.len() > op.maxStack {
			f.haltWith(wevm.StackOverflow)
			return
		}
		// The static cost floor guarantees handlers without dynamic costs
		// never run on an unaffordable frame.
		if op.static > f.gas {
			f.haltWith(wevm.InsufficientGas)
			return
		}

		res := op.execute(f)
		if res.Halt != wevm.None {
			// No gas is charged and no post-trace fires for a failed
			// operation.
			f.haltWith(res.Halt)
			return
		}
		if res.GasCost > f.gas {
			f.haltWith(wevm.InsufficientGas)
			return
		}
		f.gas -= res.GasCost

		if in.tracer != nil {
			in.tracer.TracePostExecution(f, res)
		}

		f.pc += res.PCDelta
	}
}
