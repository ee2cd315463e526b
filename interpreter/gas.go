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

const (
	CallNewAccountGas    wevm.Gas = 25000 // Paid for CALL when the destination address didn't exist prior.
	CallValueTransferGas wevm.Gas = 9000  // Paid for CALL when the value transfer is non-zero.
	CallStipend          wevm.Gas = 2300  // Free gas given at beginning of a value-bearing call.

	// CreateBySelfdestructGas is charged when the beneficiary account does
	// not exist and the self-destructing account carries a balance.
	CreateBySelfdestructGas wevm.Gas = 25000

	SelfdestructGas wevm.Gas = 5000 // Base gas cost of SELFDESTRUCT post EIP-150.

	// SstoreClearsScheduleRefund is the refund for clearing a storage slot.
	// In EIP-2200: SstoreResetGas was 5000.
	// In EIP-2929: SstoreResetGas was changed to '5000 - COLD_SLOAD_COST'.
	// In EIP-3529: SSTORE_CLEARS_SCHEDULE is defined as SSTORE_RESET_GAS + ACCESS_LIST_STORAGE_KEY_COST
	// Which becomes: 5000 - 2100 + 1900 = 4800
	SstoreClearsScheduleRefund wevm.Gas = 4800

	SstoreResetGas  wevm.Gas = 5000  // Once per SSTORE operation from clean non-zero to something else.
	SstoreSentryGas wevm.Gas = 2300  // Minimum gas required to be present for an SSTORE call, not consumed.
	SstoreSetGas    wevm.Gas = 20000 // Once per SSTORE operation from clean zero to non-zero.

	LogGas      wevm.Gas = 375 // Per LOG* operation.
	LogTopicGas wevm.Gas = 375 // Per LOG* topic.
	LogDataGas  wevm.Gas = 8   // Per byte in a LOG* operation's data.

	Keccak256WordGas wevm.Gas = 6 // Per word of input hashed by KECCAK256.
	CopyWordGas      wevm.Gas = 3 // Per word copied by the *COPY operations.
	ExpByteGas       wevm.Gas = 50
	CreateGas        wevm.Gas = 32000
	InitCodeWordGas  wevm.Gas = 2 // Per word of init code, per EIP-3860.

	// MaxInitCodeSize is the limit on init code handed to CREATE/CREATE2,
	// per EIP-3860.
	MaxInitCodeSize = 2 * 24576
)

// gasSStore computes the cost and refund delta of an SSTORE writing the
// given new value to a slot, per EIP-2200 with the EIP-2929 access pricing
// and the EIP-3529 refund schedule:
//
//  0. If *gasleft* is less than or equal to 2300, fail the current call.
//  1. If current value equals new value (this is a no-op), SLOAD_GAS is deducted.
//  2. If current value does not equal new value:
//     2.1. If original value equals current value (this storage slot has not been changed by the current execution context):
//     2.1.1. If original value is 0, SSTORE_SET_GAS (20K) gas is deducted.
//     2.1.2. Otherwise, SSTORE_RESET_GAS gas is deducted. If new value is 0, add SSTORE_CLEARS_SCHEDULE to refund counter.
//     2.2. If original value does not equal current value (this storage slot is dirty), SLOAD_GAS gas is deducted. Apply both of the following clauses:
//     2.2.1. If original value is not 0:
//     2.2.1.1. If current value is 0 (also means that new value is not 0), subtract SSTORE_CLEARS_SCHEDULE gas from refund counter.
//     2.2.1.2. If new value is 0 (also means that current value is not 0), add SSTORE_CLEARS_SCHEDULE gas to refund counter.
//     2.2.2. If original value equals new value (this storage slot is reset):
//     2.2.2.1. If original value is 0, add SSTORE_SET_GAS - SLOAD_GAS to refund counter.
//     2.2.2.2. Otherwise, add SSTORE_RESET_GAS - SLOAD_GAS gas to refund counter.
//
// The warm flag of the entry is updated as a side effect; the cold surcharge
// is folded into the returned cost.
func gasSStore(entry *witness.StorageEntry, value wevm.Word) (cost wevm.Gas, refund wevm.Gas) {
	if !entry.Warm {
		cost = witness.ColdStorageAccessCost
		entry.Warm = true
	}

	zero := wevm.Word{}
	current := entry.Value
	original := entry.Original

	if current == value { // noop (1)
		return cost + witness.WarmAccessCost, 0
	}
	if original == current {
		if original == zero { // create slot (2.1.1)
			return cost + SstoreSetGas, 0
		}
		if value == zero { // delete slot (2.1.2b)
			refund += SstoreClearsScheduleRefund
		}
		return cost + SstoreResetGas - witness.ColdStorageAccessCost, refund // write existing slot (2.1.2)
	}
	if original != zero {
		if current == zero { // recreate slot (2.2.1.1)
			refund -= SstoreClearsScheduleRefund
		} else if value == zero { // delete slot (2.2.1.2)
			refund += SstoreClearsScheduleRefund
		}
	}
	if original == value {
		if original == zero { // reset to original inexistent slot (2.2.2.1)
			refund += SstoreSetGas - witness.WarmAccessCost
		} else { // reset to original existing slot (2.2.2.2)
			refund += (SstoreResetGas - witness.ColdStorageAccessCost) - witness.WarmAccessCost
		}
	}
	return cost + witness.WarmAccessCost, refund // dirty update (2.2)
}

// callGas returns the gas forwarded to a child call.
//
// As part of EIP-150, at most base - base/64 of the remaining gas can be
// forwarded, where base is the gas remaining after the call's upfront costs.
func callGas(availableGas, base wevm.Gas, callCost *uint256.Int) wevm.Gas {
	availableGas = availableGas - base
	if availableGas < 0 {
		return 0
	}
	gas := availableGas - availableGas/64
	if !callCost.IsUint64() || (gas < wevm.Gas(callCost.Uint64())) {
		return gas
	}
	return wevm.Gas(callCost.Uint64())
}

// initCodeCost is the per-word charge for init code, per EIP-3860.
func initCodeCost(size uint64) wevm.Gas {
	return InitCodeWordGas * wevm.Gas(sizeInWords(size))
}
