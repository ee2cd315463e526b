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
	"bytes"
	"strings"
	"testing"

	"github.com/witnesslabs/wevm"
	"github.com/witnesslabs/wevm/witness"
	"go.uber.org/mock/gomock"
)

func runCode(t *testing.T, code wevm.Code, gas wevm.Gas, config Config) Result {
	t.Helper()
	vm, err := New(config)
	if err != nil {
		t.Fatalf("failed to create interpreter: %v", err)
	}
	params := Parameters{
		Gas:       gas,
		Recipient: wevm.Address{0xaa},
		Contract:  wevm.Address{0xaa},
		Code:      code,
	}
	store := witness.NewStore(16, 16)
	if _, err := store.PreloadAccount(params.Recipient); err != nil {
		t.Fatalf("failed to preload account: %v", err)
	}
	result, err := vm.Run(params, store)
	if err != nil {
		t.Fatalf("execution failed: %v", err)
	}
	return result
}

func TestInterpreter_ExecutesAnAdditionProgram(t *testing.T) {
	code := wevm.Code{
		byte(PUSH1), 0x05,
		byte(PUSH1), 0x0a,
		byte(ADD),
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	}
	result := runCode(t, code, 100000, Config{})

	if want, got := wevm.CompletedSuccess, result.State; want != got {
		t.Fatalf("unexpected state, wanted %v, got %v", want, got)
	}
	// 4 pushes, ADD, MSTORE with one word of expansion, 2 pushes, free RETURN.
	if want, got := wevm.Gas(100000-24), result.GasLeft; want != got {
		t.Errorf("unexpected remaining gas, wanted %d, got %d", want, got)
	}
	if len(result.Output) != 32 || result.Output[31] != 15 {
		t.Errorf("unexpected output: %x", result.Output)
	}
}

func TestInterpreter_RunningPastTheCodeEndIsAnImplicitStop(t *testing.T) {
	result := runCode(t, wevm.Code{byte(PUSH1), 0x01}, 100, Config{})
	if want, got := wevm.CompletedSuccess, result.State; want != got {
		t.Errorf("unexpected state, wanted %v, got %v", want, got)
	}
	if want, got := wevm.Gas(97), result.GasLeft; want != got {
		t.Errorf("unexpected remaining gas, wanted %d, got %d", want, got)
	}
	if len(result.Output) != 0 {
		t.Errorf("implicit stop produces no output, got %x", result.Output)
	}
}

func TestInterpreter_HaltsOnFailures(t *testing.T) {
	tests := map[string]struct {
		code   wevm.Code
		gas    wevm.Gas
		static bool
		want   wevm.HaltReason
	}{
		"pop on empty stack": {
			code: wevm.Code{byte(POP)},
			gas:  100,
			want: wevm.StackUnderflow,
		},
		"unaffordable static cost": {
			code: wevm.Code{byte(PUSH1), 0x01},
			gas:  2,
			want: wevm.InsufficientGas,
		},
		"invalid opcode": {
			code: wevm.Code{byte(INVALID)},
			gas:  100,
			want: wevm.InvalidOperation,
		},
		"undefined opcode": {
			code: wevm.Code{0x0c},
			gas:  100,
			want: wevm.InvalidOperation,
		},
		"jump to invalid destination": {
			code: wevm.Code{byte(PUSH1), 0x03, byte(JUMP), byte(STOP)},
			gas:  100,
			want: wevm.InvalidJumpDestination,
		},
		"jump into push data": {
			code: wevm.Code{byte(PUSH2), byte(JUMPDEST), byte(JUMPDEST), byte(PUSH1), 0x01, byte(JUMP)},
			gas:  100,
			want: wevm.InvalidJumpDestination,
		},
		"static violation": {
			code:   wevm.Code{byte(PUSH1), 0x01, byte(PUSH1), 0x01, byte(SSTORE)},
			gas:    100000,
			static: true,
			want:   wevm.IllegalStateChange,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			vm, err := New(Config{})
			if err != nil {
				t.Fatalf("failed to create interpreter: %v", err)
			}
			params := Parameters{
				Gas:       test.gas,
				Static:    test.static,
				Recipient: wevm.Address{0xaa},
				Contract:  wevm.Address{0xaa},
				Code:      test.code,
			}
			result, err := vm.Run(params, witness.NewStore(4, 4))
			if err != nil {
				t.Fatalf("execution failed: %v", err)
			}
			if want, got := wevm.ExceptionalHalt, result.State; want != got {
				t.Fatalf("unexpected state, wanted %v, got %v", want, got)
			}
			if result.HaltReason != test.want {
				t.Errorf("unexpected halt reason, wanted %v, got %v", test.want, result.HaltReason)
			}
		})
	}
}

func TestInterpreter_DetectsStackOverflow(t *testing.T) {
	code := make(wevm.Code, 0, 2*(maxStackSize+1))
	for i := 0; i <= maxStackSize; i++ {
		code = append(code, byte(PUSH1), 0x01)
	}
	result := runCode(t, code, 100000, Config{})
	if want, got := wevm.ExceptionalHalt, result.State; want != got {
		t.Fatalf("unexpected state, wanted %v, got %v", want, got)
	}
	if want, got := wevm.StackOverflow, result.HaltReason; want != got {
		t.Errorf("unexpected halt reason, wanted %v, got %v", want, got)
	}
}

func TestInterpreter_ValidJumpsAreFollowed(t *testing.T) {
	code := wevm.Code{
		byte(PUSH1), 0x04,
		byte(JUMP),
		byte(INVALID),
		byte(JUMPDEST),
		byte(STOP),
	}
	result := runCode(t, code, 100, Config{})
	if want, got := wevm.CompletedSuccess, result.State; want != got {
		t.Errorf("unexpected state, wanted %v, got %v", want, got)
	}
	if want, got := wevm.Gas(100-3-8-1), result.GasLeft; want != got {
		t.Errorf("unexpected remaining gas, wanted %d, got %d", want, got)
	}
}

func TestInterpreter_RevertExposesTheReason(t *testing.T) {
	code := wevm.Code{
		byte(PUSH1), 0xaa,
		byte(PUSH1), 0x00,
		byte(MSTORE8),
		byte(PUSH1), 0x01,
		byte(PUSH1), 0x00,
		byte(REVERT),
	}
	result := runCode(t, code, 100000, Config{})
	if want, got := wevm.Revert, result.State; want != got {
		t.Fatalf("unexpected state, wanted %v, got %v", want, got)
	}
	if !bytes.Equal(result.RevertReason, []byte{0xaa}) {
		t.Errorf("unexpected revert reason: %x", result.RevertReason)
	}
	if len(result.Output) != 0 {
		t.Errorf("reverted frames produce no output, got %x", result.Output)
	}
}

func TestInterpreter_EmittedLogsArePartOfTheResult(t *testing.T) {
	code := wevm.Code{
		byte(PUSH1), 0x77, // topic
		byte(PUSH1), 0x00, // size
		byte(PUSH1), 0x00, // offset
		byte(LOG1),
	}
	result := runCode(t, code, 100000, Config{})
	if want, got := wevm.CompletedSuccess, result.State; want != got {
		t.Fatalf("unexpected state, wanted %v, got %v", want, got)
	}
	if len(result.Logs) != 1 || len(result.Logs[0].Topics) != 1 {
		t.Fatalf("unexpected logs: %+v", result.Logs)
	}
	if want, got := wevm.Hash(wevm.NewWord(0x77)), result.Logs[0].Topics[0]; want != got {
		t.Errorf("unexpected topic, wanted %v, got %v", want, got)
	}
}

func TestInterpreter_RejectsInvalidInputs(t *testing.T) {
	vm, err := New(Config{})
	if err != nil {
		t.Fatalf("failed to create interpreter: %v", err)
	}
	if _, err := vm.Run(Parameters{}, nil); err == nil {
		t.Errorf("expected a missing store to be rejected")
	}
	if _, err := vm.Run(Parameters{Gas: -1}, witness.NewStore(1, 1)); err == nil {
		t.Errorf("expected a negative gas stipend to be rejected")
	}
}

func TestInterpreter_TracerObservesEveryOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracer := wevm.NewMockTracer(ctrl)

	var pre, post []OpCode
	tracer.EXPECT().TracePreExecution(gomock.Any()).Times(2).Do(func(frame wevm.FrameView) {
		pre = append(pre, OpCode(frame.Opcode()))
	})
	tracer.EXPECT().TracePostExecution(gomock.Any(), gomock.Any()).Times(2).Do(func(frame wevm.FrameView, result wevm.OperationResult) {
		post = append(post, OpCode(frame.Opcode()))
	})

	runCode(t, wevm.Code{byte(PUSH1), 0x01, byte(STOP)}, 100, Config{Tracer: tracer})

	if len(pre) != 2 || pre[0] != PUSH1 || pre[1] != STOP {
		t.Errorf("unexpected pre-execution trace: %v", pre)
	}
	if len(post) != 2 {
		t.Errorf("unexpected post-execution trace: %v", post)
	}
}

func TestInterpreter_FailedOperationsAreNotPostTraced(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracer := wevm.NewMockTracer(ctrl)
	tracer.EXPECT().TracePreExecution(gomock.Any()).Times(1)
	// No TracePostExecution expected.

	result := runCode(t, wevm.Code{byte(INVALID)}, 100, Config{Tracer: tracer})
	if want, got := wevm.InvalidOperation, result.HaltReason; want != got {
		t.Errorf("unexpected halt reason, wanted %v, got %v", want, got)
	}
}

// callProgram performs a CALL to address 0x42 forwarding at most 0xffff gas
// and stores the success flag in the returned word.
var callProgram = wevm.Code{
	byte(PUSH1), 0x00, // output size
	byte(PUSH1), 0x00, // output offset
	byte(PUSH1), 0x00, // input size
	byte(PUSH1), 0x00, // input offset
	byte(PUSH1), 0x00, // value
	byte(PUSH1), 0x42, // address
	byte(PUSH2), 0xff, 0xff, // gas
	byte(CALL),
	byte(PUSH1), 0x00,
	byte(MSTORE),
	byte(PUSH1), 0x20,
	byte(PUSH1), 0x00,
	byte(RETURN),
}

func TestInterpreter_CallsAreDelegatedToTheSpawner(t *testing.T) {
	ctrl := gomock.NewController(t)
	spawner := wevm.NewMockCallSpawner(ctrl)
	spawner.EXPECT().Spawn(wevm.Call, gomock.Any()).DoAndReturn(
		func(kind wevm.CallKind, params wevm.CallParameters) (wevm.CallResult, error) {
			if want, got := (wevm.Address{19: 0x42}), params.Recipient; want != got {
				t.Errorf("unexpected recipient, wanted %v, got %v", want, got)
			}
			if want, got := (wevm.Address{0xaa}), params.Sender; want != got {
				t.Errorf("unexpected sender, wanted %v, got %v", want, got)
			}
			if want, got := wevm.Gas(0xffff), params.Gas; want != got {
				t.Errorf("unexpected forwarded gas, wanted %d, got %d", want, got)
			}
			return wevm.CallResult{Success: true, GasLeft: params.Gas}, nil
		})

	result := runCode(t, callProgram, 100000, Config{Spawner: spawner})
	if want, got := wevm.CompletedSuccess, result.State; want != got {
		t.Fatalf("unexpected state, wanted %v, got %v", want, got)
	}
	if len(result.Output) != 32 || result.Output[31] != 1 {
		t.Errorf("call should have succeeded, output %x", result.Output)
	}
	// The child returned all forwarded gas, so only the base access cost and
	// the surrounding instructions are charged.
	if want, got := wevm.Gas(100000-7*3-2600-3-6-3-3), result.GasLeft; want != got {
		t.Errorf("unexpected remaining gas, wanted %d, got %d", want, got)
	}
}

func TestInterpreter_CallsWithoutSpawnerFailAndConsumeTheForwardedGas(t *testing.T) {
	result := runCode(t, callProgram, 100000, Config{})
	if want, got := wevm.CompletedSuccess, result.State; want != got {
		t.Fatalf("unexpected state, wanted %v, got %v", want, got)
	}
	if len(result.Output) != 32 || result.Output[31] != 0 {
		t.Errorf("call should have failed, output %x", result.Output)
	}
	if want, got := wevm.Gas(100000-7*3-2600-0xffff-3-6-3-3), result.GasLeft; want != got {
		t.Errorf("unexpected remaining gas, wanted %d, got %d", want, got)
	}
}

func TestInterpreter_DelegateCallsInheritTheCallContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	spawner := wevm.NewMockCallSpawner(ctrl)
	spawner.EXPECT().Spawn(wevm.DelegateCall, gomock.Any()).DoAndReturn(
		func(kind wevm.CallKind, params wevm.CallParameters) (wevm.CallResult, error) {
			if want, got := (wevm.Address{0xaa}), params.Recipient; want != got {
				t.Errorf("the recipient must stay the current contract, wanted %v, got %v", want, got)
			}
			if want, got := (wevm.Address{19: 0x42}), params.CodeAddress; want != got {
				t.Errorf("unexpected code address, wanted %v, got %v", want, got)
			}
			return wevm.CallResult{Success: true}, nil
		})

	code := wevm.Code{
		byte(PUSH1), 0x00, // output size
		byte(PUSH1), 0x00, // output offset
		byte(PUSH1), 0x00, // input size
		byte(PUSH1), 0x00, // input offset
		byte(PUSH1), 0x42, // address
		byte(PUSH2), 0xff, 0xff, // gas
		byte(DELEGATECALL),
	}
	result := runCode(t, code, 100000, Config{Spawner: spawner})
	if want, got := wevm.CompletedSuccess, result.State; want != got {
		t.Errorf("unexpected state, wanted %v, got %v", want, got)
	}
}

func TestInterpreter_CreateForwardsInitCodeAndReportsTheAddress(t *testing.T) {
	created := wevm.Address{19: 0x77}
	ctrl := gomock.NewController(t)
	spawner := wevm.NewMockCallSpawner(ctrl)
	spawner.EXPECT().Spawn(wevm.Create, gomock.Any()).DoAndReturn(
		func(kind wevm.CallKind, params wevm.CallParameters) (wevm.CallResult, error) {
			if want, got := (wevm.Data{0x00}), params.Input; !bytes.Equal(want, got) {
				t.Errorf("unexpected init code, wanted %x, got %x", want, got)
			}
			return wevm.CallResult{Success: true, CreatedAddress: created}, nil
		})

	code := wevm.Code{
		byte(PUSH1), 0x01, // init code size, one STOP byte
		byte(PUSH1), 0x00, // init code offset
		byte(PUSH1), 0x00, // value
		byte(CREATE),
		byte(PUSH1), 0x00,
		byte(MSTORE),
		byte(PUSH1), 0x20,
		byte(PUSH1), 0x00,
		byte(RETURN),
	}
	result := runCode(t, code, 200000, Config{Spawner: spawner})
	if want, got := wevm.CompletedSuccess, result.State; want != got {
		t.Fatalf("unexpected state, wanted %v, got %v", want, got)
	}
	if want, got := 1, len(result.Created); want != got {
		t.Fatalf("unexpected number of created accounts: %d", got)
	}
	if result.Created[0] != created {
		t.Errorf("unexpected created address, wanted %v, got %v", created, result.Created[0])
	}
	if want, got := byte(0x77), result.Output[31]; want != got {
		t.Errorf("the created address should be on the stack, output %x", result.Output)
	}
}

func TestInterpreter_CallDepthLimitFailsCallsLocally(t *testing.T) {
	ctrl := gomock.NewController(t)
	spawner := wevm.NewMockCallSpawner(ctrl)
	// The spawner must not be consulted at the depth limit.

	vm, err := New(Config{Spawner: spawner})
	if err != nil {
		t.Fatalf("failed to create interpreter: %v", err)
	}
	params := Parameters{
		Gas:       100000,
		Depth:     1024,
		Recipient: wevm.Address{0xaa},
		Contract:  wevm.Address{0xaa},
		Code:      callProgram,
	}
	result, err := vm.Run(params, witness.NewStore(16, 16))
	if err != nil {
		t.Fatalf("execution failed: %v", err)
	}
	if want, got := wevm.CompletedSuccess, result.State; want != got {
		t.Fatalf("unexpected state, wanted %v, got %v", want, got)
	}
	if result.Output[31] != 0 {
		t.Errorf("calls at the depth limit must fail, output %x", result.Output)
	}
}

func TestLoggingTracer_WritesOneLinePerInstruction(t *testing.T) {
	buffer := &bytes.Buffer{}
	runCode(t, wevm.Code{byte(PUSH1), 0x01, byte(POP), byte(STOP)}, 100,
		Config{Tracer: NewLoggingTracer(buffer)})

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	if want, got := 3, len(lines); want != got {
		t.Fatalf("unexpected number of trace lines, wanted %d, got %d", want, got)
	}
	if !strings.Contains(lines[0], "PUSH1") {
		t.Errorf("unexpected first trace line: %q", lines[0])
	}
}

func TestStatisticsTracer_CountsExecutedInstructions(t *testing.T) {
	tracer := NewStatisticsTracer()
	runCode(t, wevm.Code{byte(PUSH1), 0x01, byte(POP), byte(STOP)}, 100,
		Config{Tracer: tracer})

	summary := tracer.Summary()
	if !strings.Contains(summary, "Steps: 3") {
		t.Errorf("unexpected summary: %s", summary)
	}
	if !strings.Contains(summary, "PUSH1") {
		t.Errorf("summary should name the executed instructions: %s", summary)
	}
}
