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

//go:generate mockgen -source calls.go -destination calls_mock.go -package wevm

// CallKind is an enum enabling the differentiation of the different types
// of recursive contract calls supported in the EVM.
type CallKind int

const (
	Call CallKind = iota
	DelegateCall
	StaticCall
	CallCode
	Create
	Create2
)

func (k CallKind) String() string {
	switch k {
	case Call:
		return "call"
	case StaticCall:
		return "static_call"
	case DelegateCall:
		return "delegate_call"
	case CallCode:
		return "call_code"
	case Create:
		return "create"
	case Create2:
		return "create2"
	default:
		return "unknown"
	}
}

// CallParameters summarizes the inputs a suspended frame hands to the call
// orchestrator when requesting a child frame.
type CallParameters struct {
	Sender      Address
	Recipient   Address // < not relevant for CREATE and CREATE2
	Value       Word    // < ignored by static calls, considered to be 0
	Input       Data
	Gas         Gas
	Salt        Hash    // < only relevant for CREATE2 calls
	CodeAddress Address // < the address the executed code is loaded from
}

// CallResult summarizes the outcome of a child frame once it has completed.
type CallResult struct {
	Output         Data
	GasLeft        Gas
	GasRefund      Gas
	CreatedAddress Address // < only meaningful for CREATE and CREATE2
	Success        bool    // false if the child reverted or halted
}

// CallSpawner is the boundary between the execution core and the call-stack
// orchestrator. When a frame executes a call or create operation, it suspends
// itself and requests a child frame through this interface. The orchestrator
// owns recursion, depth limits beyond the local check, and address
// derivation for creates. Implementations must not retain the input slices
// beyond the duration of the call.
type CallSpawner interface {
	Spawn(kind CallKind, parameters CallParameters) (CallResult, error)
}
