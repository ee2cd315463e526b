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

//go:generate mockgen -source tracer.go -destination tracer_mock.go -package wevm

// FrameView is a read-only view on an execution frame, handed to tracers
// before and after each operation. Implementations of Tracer must not retain
// the view beyond the duration of the callback.
type FrameView interface {
	// PC is the current program counter.
	PC() int32
	// Opcode is the byte at the current program counter, or 0 if the
	// program counter is past the end of the code.
	Opcode() byte
	// GasRemaining is the gas left in the frame.
	GasRemaining() Gas
	// GasRefund is the refund accumulated by the frame so far.
	GasRefund() Gas
	// StackSize is the number of words on the operand stack.
	StackSize() int
	// StackItem returns the stack word at the given depth, 0 being the top.
	// It panics if the index is out of range.
	StackItem(index int) Word
	// MemorySize is the current size of the linear memory in bytes.
	MemorySize() int
	// Depth is the call depth of the frame.
	Depth() int
	// State is the current life-cycle state of the frame.
	State() State
	// Static reports whether the frame executes in a static context.
	Static() bool
	// ContractAddress is the address whose code is being executed.
	ContractAddress() Address
}

// Tracer observes the execution of individual operations. The pre-execution
// hook fires before the opcode is dispatched, with the frame in its
// pre-mutation state. The post-execution hook fires after the operation
// succeeded and its gas was charged; it does not fire for operations that
// caused an exceptional halt.
type Tracer interface {
	TracePreExecution(frame FrameView)
	TracePostExecution(frame FrameView, result OperationResult)
}
