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

import "fmt"

// State is the life-cycle state of an execution frame. The numeric values
// are part of the versioned frame wire contract and must not be reordered.
type State uint32

const (
	NotStarted State = iota
	CodeExecuting
	CodeSuccess
	CodeSuspended
	ExceptionalHalt
	Revert
	CompletedFailed
	CompletedSuccess
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case CodeExecuting:
		return "code_executing"
	case CodeSuccess:
		return "code_success"
	case CodeSuspended:
		return "code_suspended"
	case ExceptionalHalt:
		return "exceptional_halt"
	case Revert:
		return "revert"
	case CompletedFailed:
		return "completed_failed"
	case CompletedSuccess:
		return "completed_success"
	default:
		return fmt.Sprintf("invalid_state(%d)", uint32(s))
	}
}

// IsTerminal reports whether a frame in this state has finished executing.
func (s State) IsTerminal() bool {
	switch s {
	case ExceptionalHalt, Revert, CompletedFailed, CompletedSuccess:
		return true
	}
	return false
}

// FrameType distinguishes contract creation frames from message call frames.
// The numeric values are part of the frame wire contract.
type FrameType uint32

const (
	ContractCreation FrameType = iota
	MessageCall
)

func (t FrameType) String() string {
	switch t {
	case ContractCreation:
		return "contract_creation"
	case MessageCall:
		return "message_call"
	default:
		return fmt.Sprintf("invalid_type(%d)", uint32(t))
	}
}

// HaltReason identifies the cause of an exceptional halt. The numeric values
// are part of the frame wire contract and must not be reordered.
type HaltReason uint32

const (
	None HaltReason = iota
	InsufficientGas
	InvalidOperation
	InvalidJumpDestination
	StackOverflow
	StackUnderflow
	IllegalStateChange
	OutOfBounds
	CodeTooLarge
	InvalidCode
	PrecompileError
	TooManyStackItems
	InsufficientStackItems
)

func (r HaltReason) String() string {
	switch r {
	case None:
		return "none"
	case InsufficientGas:
		return "insufficient_gas"
	case InvalidOperation:
		return "invalid_operation"
	case InvalidJumpDestination:
		return "invalid_jump_destination"
	case StackOverflow:
		return "stack_overflow"
	case StackUnderflow:
		return "stack_underflow"
	case IllegalStateChange:
		return "illegal_state_change"
	case OutOfBounds:
		return "out_of_bounds"
	case CodeTooLarge:
		return "code_too_large"
	case InvalidCode:
		return "invalid_code"
	case PrecompileError:
		return "precompile_error"
	case TooManyStackItems:
		return "too_many_stack_items"
	case InsufficientStackItems:
		return "insufficient_stack_items"
	default:
		return fmt.Sprintf("invalid_halt_reason(%d)", uint32(r))
	}
}

// OperationResult summarizes the outcome of a single opcode handler
// invocation. GasCost is the total amount to be charged by the driver after
// a successful operation. A non-None Halt aborts the frame without charging
// gas. PCDelta is the program counter advance; handlers that set the program
// counter themselves, such as a taken jump, report a delta of zero.
type OperationResult struct {
	GasCost Gas
	Halt    HaltReason
	PCDelta int32
}
