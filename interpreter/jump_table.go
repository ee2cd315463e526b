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
	"fmt"

	"github.com/witnesslabs/wevm"
)

// operation describes one entry of the dispatch table.
type operation struct {
	// name is the mnemonic of the instruction; empty for unassigned opcodes.
	name string

	// static is the portion of the gas cost known without executing the
	// instruction. The driver verifies it is affordable before dispatching,
	// so handlers without dynamic costs never mutate an unaffordable frame.
	static wevm.Gas

	// minStack is the number of stack items the instruction consumes.
	minStack int

	// maxStack is the largest stack size the instruction can run on without
	// overflowing the stack limit.
	maxStack int

	execute func(f *frame) wevm.OperationResult
}

// instructionSet maps each of the 256 opcode byte values to its operation.
// Unassigned opcodes map to an invalid-operation handler.
var instructionSet = newInstructionSet()

func newInstructionSet() [256]operation {
	var table [256]operation
	for i := range table {
		table[i] = operation{
			static:   0,
			minStack: 0,
			maxStack: maxStackSize,
			execute:  opInvalid,
		}
	}

	op := func(code OpCode, name string, static wevm.Gas, pops, pushes int, execute func(f *frame) wevm.OperationResult) {
		table[code] = operation{
			name:     name,
			static:   static,
			minStack: pops,
			maxStack: maxStackSize + pops - pushes,
			execute:  execute,
		}
	}

	op(STOP, "STOP", 0, 0, 0, opStop)
	op(ADD, "ADD", 3, 2, 1, opAdd)
	op(MUL, "MUL", 5, 2, 1, opMul)
	op(SUB, "SUB", 3, 2, 1, opSub)
	op(DIV, "DIV", 5, 2, 1, opDiv)
	op(SDIV, "SDIV", 5, 2, 1, opSDiv)
	op(MOD, "MOD", 5, 2, 1, opMod)
	op(SMOD, "SMOD", 5, 2, 1, opSMod)
	op(ADDMOD, "ADDMOD", 8, 3, 1, opAddMod)
	op(MULMOD, "MULMOD", 8, 3, 1, opMulMod)
	op(EXP, "EXP", 10, 2, 1, opExp)
	op(SIGNEXTEND, "SIGNEXTEND", 5, 2, 1, opSignExtend)

	op(LT, "LT", 3, 2, 1, opLt)
	op(GT, "GT", 3, 2, 1, opGt)
	op(SLT, "SLT", 3, 2, 1, opSlt)
	op(SGT, "SGT", 3, 2, 1, opSgt)
	op(EQ, "EQ", 3, 2, 1, opEq)
	op(ISZERO, "ISZERO", 3, 1, 1, opIszero)
	op(AND, "AND", 3, 2, 1, opAnd)
	op(OR, "OR", 3, 2, 1, opOr)
	op(XOR, "XOR", 3, 2, 1, opXor)
	op(NOT, "NOT", 3, 1, 1, opNot)
	op(BYTE, "BYTE", 3, 2, 1, opByte)
	op(SHL, "SHL", 3, 2, 1, opShl)
	op(SHR, "SHR", 3, 2, 1, opShr)
	op(SAR, "SAR", 3, 2, 1, opSar)

	op(KECCAK256, "KECCAK256", 30, 2, 1, opKeccak256)

	op(ADDRESS, "ADDRESS", 2, 0, 1, opAddress)
	op(BALANCE, "BALANCE", 100, 1, 1, opBalance)
	op(ORIGIN, "ORIGIN", 2, 0, 1, opOrigin)
	op(CALLER, "CALLER", 2, 0, 1, opCaller)
	op(CALLVALUE, "CALLVALUE", 2, 0, 1, opCallValue)
	op(CALLDATALOAD, "CALLDATALOAD", 3, 1, 1, opCallDataLoad)
	op(CALLDATASIZE, "CALLDATASIZE", 2, 0, 1, opCallDataSize)
	op(CALLDATACOPY, "CALLDATACOPY", 3, 3, 0, opCallDataCopy)
	op(CODESIZE, "CODESIZE", 2, 0, 1, opCodeSize)
	op(CODECOPY, "CODECOPY", 3, 3, 0, opCodeCopy)
	op(GASPRICE, "GASPRICE", 2, 0, 1, opGasPrice)
	op(EXTCODESIZE, "EXTCODESIZE", 100, 1, 1, opExtCodeSize)
	op(EXTCODECOPY, "EXTCODECOPY", 100, 4, 0, opExtCodeCopy)
	op(RETURNDATASIZE, "RETURNDATASIZE", 2, 0, 1, opReturnDataSize)
	op(RETURNDATACOPY, "RETURNDATACOPY", 3, 3, 0, opReturnDataCopy)
	op(EXTCODEHASH, "EXTCODEHASH", 100, 1, 1, opExtCodeHash)

	op(BLOCKHASH, "BLOCKHASH", 20, 1, 1, opBlockhash)
	op(COINBASE, "COINBASE", 2, 0, 1, opCoinbase)
	op(TIMESTAMP, "TIMESTAMP", 2, 0, 1, opTimestamp)
	op(NUMBER, "NUMBER", 2, 0, 1, opNumber)
	op(PREVRANDAO, "PREVRANDAO", 2, 0, 1, opPrevRandao)
	op(GASLIMIT, "GASLIMIT", 2, 0, 1, opGasLimit)
	op(CHAINID, "CHAINID", 2, 0, 1, opChainId)
	op(SELFBALANCE, "SELFBALANCE", 5, 0, 1, opSelfBalance)
	op(BASEFEE, "BASEFEE", 2, 0, 1, opBaseFee)
	op(BLOBHASH, "BLOBHASH", 3, 1, 1, opBlobHash)
	op(BLOBBASEFEE, "BLOBBASEFEE", 2, 0, 1, opBlobBaseFee)

	op(POP, "POP", 2, 1, 0, opPop)
	op(MLOAD, "MLOAD", 3, 1, 1, opMload)
	op(MSTORE, "MSTORE", 3, 2, 0, opMstore)
	op(MSTORE8, "MSTORE8", 3, 2, 0, opMstore8)
	op(SLOAD, "SLOAD", 100, 1, 1, opSload)
	op(SSTORE, "SSTORE", 0, 2, 0, opSstore)
	op(JUMP, "JUMP", 8, 1, 0, opJump)
	op(JUMPI, "JUMPI", 10, 2, 0, opJumpi)
	op(PC, "PC", 2, 0, 1, opPc)
	op(MSIZE, "MSIZE", 2, 0, 1, opMsize)
	op(GAS, "GAS", 2, 0, 1, opGas)
	op(JUMPDEST, "JUMPDEST", 1, 0, 0, opJumpdest)
	op(TLOAD, "TLOAD", 100, 1, 1, opTload)
	op(TSTORE, "TSTORE", 100, 2, 0, opTstore)
	op(MCOPY, "MCOPY", 3, 3, 0, opMcopy)
	op(PUSH0, "PUSH0", 2, 0, 1, opPush0)

	for i := 0; i < 32; i++ {
		op(PUSH1+OpCode(i), fmt.Sprintf("PUSH%d", i+1), 3, 0, 1, makePush(i+1))
	}
	for i := 0; i < 16; i++ {
		op(DUP1+OpCode(i), fmt.Sprintf("DUP%d", i+1), 3, i+1, i+2, makeDup(i+1))
	}
	for i := 0; i < 16; i++ {
		op(SWAP1+OpCode(i), fmt.Sprintf("SWAP%d", i+1), 3, i+2, i+2, makeSwap(i+1))
	}
	for i := 0; i < 5; i++ {
		op(LOG0+OpCode(i), fmt.Sprintf("LOG%d", i), LogGas+LogTopicGas*wevm.Gas(i), i+2, 0, makeLog(i))
	}

	op(CREATE, "CREATE", 32000, 3, 1, opCreate)
	op(CALL, "CALL", 100, 7, 1, opCall)
	op(CALLCODE, "CALLCODE", 100, 7, 1, opCallCode)
	op(RETURN, "RETURN", 0, 2, 0, opReturn)
	op(DELEGATECALL, "DELEGATECALL", 100, 6, 1, opDelegateCall)
	op(CREATE2, "CREATE2", 32000, 4, 1, opCreate2)
	op(STATICCALL, "STATICCALL", 100, 6, 1, opStaticCall)
	op(REVERT, "REVERT", 0, 2, 0, opRevert)
	op(INVALID, "INVALID", 0, 0, 0, opInvalid)
	op(SELFDESTRUCT, "SELFDESTRUCT", 5000, 1, 0, opSelfdestruct)

	return table
}
