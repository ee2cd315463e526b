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

import "testing"

func TestState_NumericValuesAreStable(t *testing.T) {
	// These values are shared with embedders across language boundaries and
	// must never be renumbered.
	tests := map[State]uint32{
		NotStarted:       0,
		CodeExecuting:    1,
		CodeSuccess:      2,
		CodeSuspended:    3,
		ExceptionalHalt:  4,
		Revert:           5,
		CompletedFailed:  6,
		CompletedSuccess: 7,
	}
	for state, want := range tests {
		if got := uint32(state); got != want {
			t.Errorf("state %v was renumbered, wanted %d, got %d", state, want, got)
		}
	}
}

func TestHaltReason_NumericValuesAreStable(t *testing.T) {
	tests := map[HaltReason]uint32{
		None:                   0,
		InsufficientGas:        1,
		InvalidOperation:       2,
		InvalidJumpDestination: 3,
		StackOverflow:          4,
		StackUnderflow:         5,
		IllegalStateChange:     6,
		OutOfBounds:            7,
		CodeTooLarge:           8,
		InvalidCode:            9,
		PrecompileError:        10,
		TooManyStackItems:      11,
		InsufficientStackItems: 12,
	}
	for reason, want := range tests {
		if got := uint32(reason); got != want {
			t.Errorf("halt reason %v was renumbered, wanted %d, got %d", reason, want, got)
		}
	}
}

func TestFrameType_NumericValuesAreStable(t *testing.T) {
	if got := uint32(ContractCreation); got != 0 {
		t.Errorf("contract creation was renumbered, wanted 0, got %d", got)
	}
	if got := uint32(MessageCall); got != 1 {
		t.Errorf("message call was renumbered, wanted 1, got %d", got)
	}
}

func TestState_TerminalStatesAreRecognized(t *testing.T) {
	tests := map[State]bool{
		NotStarted:       false,
		CodeExecuting:    false,
		CodeSuccess:      false,
		CodeSuspended:    false,
		ExceptionalHalt:  true,
		Revert:           true,
		CompletedFailed:  true,
		CompletedSuccess: true,
	}
	for state, want := range tests {
		if got := state.IsTerminal(); got != want {
			t.Errorf("unexpected terminality of %v, wanted %t, got %t", state, want, got)
		}
	}
}

func TestEnums_HaveReadableNames(t *testing.T) {
	if want, got := "exceptional_halt", ExceptionalHalt.String(); want != got {
		t.Errorf("unexpected state name, wanted %s, got %s", want, got)
	}
	if want, got := "invalid_jump_destination", InvalidJumpDestination.String(); want != got {
		t.Errorf("unexpected halt reason name, wanted %s, got %s", want, got)
	}
}
