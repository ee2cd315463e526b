// Copyright (c) 2026 Witness Labs
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2030-08-01
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package witness provides the pre-loaded state snapshot the execution core
// runs against. The host populates a fixed-capacity Store with every account
// and storage slot a transaction might touch before execution starts, so the
// interpreter never calls back into external state storage while running.
// After execution, the host diffs the mutated entries against their original
// values to derive the resulting state updates.
package witness

import (
	"github.com/witnesslabs/wevm"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// ErrCapacityExceeded is returned when adding an entry to a store that
	// is already at its fixed capacity. The host mis-provisioned the witness;
	// the condition is fatal to the transaction.
	ErrCapacityExceeded = wevm.ConstError("witness capacity exceeded")

	// ErrInsufficientBalance is returned by value transfers exceeding the
	// source account's balance.
	ErrInsufficientBalance = wevm.ConstError("insufficient balance")
)

// Access costs per EIP-2929.
const (
	WarmAccessCost        wevm.Gas = 100
	ColdAccountAccessCost wevm.Gas = 2600
	ColdStorageAccessCost wevm.Gas = 2100
)

// AccountEntry is the witness snapshot of a single account. Presence of an
// entry in the store means the account exists on chain (or was created
// during this execution); absence means the account does not exist.
type AccountEntry struct {
	Address  wevm.Address
	Balance  wevm.Word
	Nonce    uint64
	CodeHash wevm.Hash
	Code     wevm.Code

	// Warm tracks whether the account has been accessed during this
	// transaction, per EIP-2929.
	Warm bool
}

// Empty reports whether the account is empty as defined by EIP-161, meaning
// it has zero balance, zero nonce, and no code.
func (e *AccountEntry) Empty() bool {
	return e.Balance.IsZero() && e.Nonce == 0 && len(e.Code) == 0
}

// StorageEntry is the witness snapshot of a single storage slot. Original
// holds the value the slot had at the start of the transaction and never
// changes during execution; Value is the current value.
type StorageEntry struct {
	Address  wevm.Address
	Key      wevm.Key
	Value    wevm.Word
	Original wevm.Word

	// Warm tracks whether the slot has been accessed during this
	// transaction, per EIP-2929.
	Warm bool
}

type slotID struct {
	address wevm.Address
	key     wevm.Key
}

// Store is a fixed-capacity collection of account and storage entries. It is
// not safe for concurrent use; a store belongs to a single execution.
type Store struct {
	accounts    map[wevm.Address]*AccountEntry
	storage     map[slotID]*StorageEntry
	maxAccounts int
	maxSlots    int
}

// NewStore creates a store with the given fixed capacities. The capacities
// must be sized conservatively by the host ahead of execution; running out
// of room during execution is a fatal condition, not a resize.
func NewStore(maxAccounts, maxSlots int) *Store {
	return &Store{
		accounts:    make(map[wevm.Address]*AccountEntry, maxAccounts),
		storage:     make(map[slotID]*StorageEntry, maxSlots),
		maxAccounts: maxAccounts,
		maxSlots:    maxSlots,
	}
}

// FindAccount returns the entry for the given address, or nil if the account
// is not part of the witness and thus does not exist.
func (s *Store) FindAccount(address wevm.Address) *AccountEntry {
	return s.accounts[address]
}

// AddAccount materializes a new account during execution, for instance as
// the target of a value transfer or a create. The entry starts out warm,
// since newly created accounts are considered accessed per EIP-2929.
func (s *Store) AddAccount(address wevm.Address) (*AccountEntry, error) {
	if entry := s.accounts[address]; entry != nil {
		return entry, nil
	}
	if len(s.accounts) >= s.maxAccounts {
		return nil, ErrCapacityExceeded
	}
	entry := &AccountEntry{Address: address, Warm: true}
	s.accounts[address] = entry
	return entry, nil
}

// PreloadAccount is the host-side population path. Unlike AddAccount, the
// resulting entry starts out cold.
func (s *Store) PreloadAccount(address wevm.Address) (*AccountEntry, error) {
	entry, err := s.AddAccount(address)
	if err != nil {
		return nil, err
	}
	entry.Warm = false
	return entry, nil
}

// FindStorage returns the entry for the given slot, or nil if the slot is
// not part of the witness.
func (s *Store) FindStorage(address wevm.Address, key wevm.Key) *StorageEntry {
	return s.storage[slotID{address, key}]
}

// AddStorage materializes a storage slot with zero current and original
// values. The entry starts out cold; the access that triggered the
// materialization pays the cold cost through MarkStorageWarm.
func (s *Store) AddStorage(address wevm.Address, key wevm.Key) (*StorageEntry, error) {
	id := slotID{address, key}
	if entry := s.storage[id]; entry != nil {
		return entry, nil
	}
	if len(s.storage) >= s.maxSlots {
		return nil, ErrCapacityExceeded
	}
	entry := &StorageEntry{Address: address, Key: key}
	s.storage[id] = entry
	return entry, nil
}

// PreloadStorage is the host-side population path for storage slots. The
// given value becomes both the current and the original value of the slot.
func (s *Store) PreloadStorage(address wevm.Address, key wevm.Key, value wevm.Word) (*StorageEntry, error) {
	entry, err := s.AddStorage(address, key)
	if err != nil {
		return nil, err
	}
	entry.Value = value
	entry.Original = value
	return entry, nil
}

// MarkAccountWarm returns the access cost for the given account entry and
// marks it warm. A nil entry stands for a non-existing account, which is
// always charged as a cold access.
func (s *Store) MarkAccountWarm(entry *AccountEntry) wevm.Gas {
	if entry == nil {
		return ColdAccountAccessCost
	}
	if entry.Warm {
		return WarmAccessCost
	}
	entry.Warm = true
	return ColdAccountAccessCost
}

// MarkStorageWarm returns the access cost for the given storage entry and
// marks it warm. A nil entry stands for a slot outside the witness, which
// is always charged as a cold access.
func (s *Store) MarkStorageWarm(entry *StorageEntry) wevm.Gas {
	if entry == nil {
		return ColdStorageAccessCost
	}
	if entry.Warm {
		return WarmAccessCost
	}
	entry.Warm = true
	return ColdStorageAccessCost
}

// TransferValue moves the given amount from one account to another. A zero
// amount always succeeds, including between the same account.
func (s *Store) TransferValue(from, to *AccountEntry, amount wevm.Word) error {
	if amount.IsZero() {
		return nil
	}
	if from.Balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)
	return nil
}

// IncrementNonce increments the account's nonce, wrapping around at the
// uint64 boundary.
func (s *Store) IncrementNonce(entry *AccountEntry) {
	entry.Nonce++
}

// AccountCount returns the number of account entries in the store.
func (s *Store) AccountCount() int {
	return len(s.accounts)
}

// StorageCount returns the number of storage entries in the store.
func (s *Store) StorageCount() int {
	return len(s.storage)
}

// Accounts lists all account entries ordered by address, for deterministic
// diffing by the host.
func (s *Store) Accounts() []*AccountEntry {
	addresses := maps.Keys(s.accounts)
	slices.SortFunc(addresses, func(a, b wevm.Address) int {
		return slices.Compare(a[:], b[:])
	})
	res := make([]*AccountEntry, 0, len(addresses))
	for _, address := range addresses {
		res = append(res, s.accounts[address])
	}
	return res
}

// StorageSlots lists all storage entries ordered by address and key, for
// deterministic diffing by the host.
func (s *Store) StorageSlots() []*StorageEntry {
	ids := maps.Keys(s.storage)
	slices.SortFunc(ids, func(a, b slotID) int {
		if c := slices.Compare(a.address[:], b.address[:]); c != 0 {
			return c
		}
		return slices.Compare(a.key[:], b.key[:])
	})
	res := make([]*StorageEntry, 0, len(ids))
	for _, id := range ids {
		res = append(res, s.storage[id])
	}
	return res
}
