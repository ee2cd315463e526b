// Copyright (c) 2026 Witness Labs
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2030-08-01
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package wire implements the binary frame contract between the execution
// core and embedders running it across process or language boundaries, for
// instance over shared memory.
//
// The layout is not self-describing; this package implements version 1:
// a fixed 384-byte header carrying the machine state, relative offsets and
// sizes of the variable-length regions, the immutable call context, and the
// halt reason, followed by the regions themselves (stack, memory, code,
// input, output, return data, logs, warm address and storage sets). All
// multi-byte integers are little-endian; 256-bit values are exactly 32
// bytes, big-endian. Size fields are unsigned on the wire but must stay
// within a signed 32-bit range for cross-language safety.
package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/witnesslabs/wevm"
)

// Version identifies the layout implemented by this package.
const Version = 1

// HeaderSize is the fixed size of the frame header in bytes.
const HeaderSize = 384

// Header field offsets. The layout is a cross-language contract; the
// positions below must never change within a version.
const (
	offPC                = 0
	offSection           = 4
	offGasRemaining      = 8
	offGasRefund         = 16
	offStackSize         = 24
	offMemorySize        = 28
	offState             = 32
	offType              = 36
	offIsStatic          = 40
	offDepth             = 44
	offStackPtr          = 48
	offMemoryPtr         = 56
	offCodePtr           = 64
	offInputPtr          = 72
	offOutputPtr         = 80
	offReturnDataPtr     = 88
	offLogsPtr           = 96
	offWarmAddressesPtr  = 104
	offCodeSize          = 112
	offInputSize         = 116
	offOutputSize        = 120
	offReturnDataSize    = 124
	offLogsCount         = 128
	offWarmAddressCount  = 132
	offWarmStorageCount  = 136
	offRecipient         = 144
	offSender            = 164
	offContract          = 184
	offOriginator        = 204
	offMiningBeneficiary = 224
	offValue             = 244
	offApparentValue     = 276
	offGasPrice          = 308
	offHaltReason        = 340
)

const (
	addressSize   = 20
	wordSize      = 32
	stackItemSize = 32
	maxStackItems = 1024

	// Per-entry sizes of the log and warm-set regions.
	logEntryHeaderSize = addressSize + 8 // address + topic count + data size
	warmSlotSize       = addressSize + wordSize
)

// WarmSlot identifies one warmed storage slot in the warm-set region.
type WarmSlot struct {
	Address wevm.Address
	Key     wevm.Key
}

// Frame is the decoded form of a serialized execution frame. It mirrors the
// state the execution core exposes to its embedder at a frame boundary.
type Frame struct {
	PC           int32
	Section      int32
	GasRemaining wevm.Gas
	GasRefund    wevm.Gas
	State        wevm.State
	Type         wevm.FrameType
	Static       bool
	Depth        uint32
	HaltReason   wevm.HaltReason

	Stack      []wevm.Word // bottom first
	Memory     []byte
	Code       wevm.Code
	Input      wevm.Data
	Output     wevm.Data
	ReturnData wevm.Data
	Logs       []wevm.Log

	WarmAddresses []wevm.Address
	WarmSlots     []WarmSlot

	Recipient         wevm.Address
	Sender            wevm.Address
	Contract          wevm.Address
	Originator        wevm.Address
	MiningBeneficiary wevm.Address

	Value         wevm.Word
	ApparentValue wevm.Word
	GasPrice      wevm.Word
}

// MarshalBinary encodes the frame into the version 1 layout.
func (f *Frame) MarshalBinary() ([]byte, error) {
	if len(f.Stack) > maxStackItems {
		return nil, fmt.Errorf("stack size %d exceeds maximum of %d", len(f.Stack), maxStackItems)
	}
	for _, check := range []struct {
		name string
		size int
	}{
		{"memory", len(f.Memory)},
		{"code", len(f.Code)},
		{"input", len(f.Input)},
		{"output", len(f.Output)},
		{"return data", len(f.ReturnData)},
		{"log count", len(f.Logs)},
		{"warm address count", len(f.WarmAddresses)},
		{"warm storage count", len(f.WarmSlots)},
	} {
		if check.size > math.MaxInt32 {
			return nil, fmt.Errorf("%s size %d exceeds signed 32-bit range", check.name, check.size)
		}
	}

	logsSize := 0
	for _, log := range f.Logs {
		logsSize += logEntryHeaderSize + len(log.Topics)*wordSize + len(log.Data)
	}

	total := HeaderSize +
		len(f.Stack)*stackItemSize +
		len(f.Memory) + len(f.Code) + len(f.Input) + len(f.Output) + len(f.ReturnData) +
		logsSize +
		len(f.WarmAddresses)*addressSize + len(f.WarmSlots)*warmSlotSize
	buf := make([]byte, total)

	putU32 := func(off int, v uint32) { binary.LittleEndian.PutUint32(buf[off:], v) }
	putU64 := func(off int, v uint64) { binary.LittleEndian.PutUint64(buf[off:], v) }

	putU32(offPC, uint32(f.PC))
	putU32(offSection, uint32(f.Section))
	putU64(offGasRemaining, uint64(f.GasRemaining))
	putU64(offGasRefund, uint64(f.GasRefund))
	putU32(offStackSize, uint32(len(f.Stack)))
	putU32(offMemorySize, uint32(len(f.Memory)))
	putU32(offState, uint32(f.State))
	putU32(offType, uint32(f.Type))
	if f.Static {
		putU32(offIsStatic, 1)
	}
	putU32(offDepth, f.Depth)

	cursor := uint64(HeaderSize)
	region := func(ptrOff int, size int) []byte {
		putU64(ptrOff, cursor)
		res := buf[cursor : cursor+uint64(size)]
		cursor += uint64(size)
		return res
	}

	stackRegion := region(offStackPtr, len(f.Stack)*stackItemSize)
	for i, item := range f.Stack {
		copy(stackRegion[i*stackItemSize:], item[:])
	}
	copy(region(offMemoryPtr, len(f.Memory)), f.Memory)
	copy(region(offCodePtr, len(f.Code)), f.Code)
	copy(region(offInputPtr, len(f.Input)), f.Input)
	copy(region(offOutputPtr, len(f.Output)), f.Output)
	copy(region(offReturnDataPtr, len(f.ReturnData)), f.ReturnData)

	logsRegion := region(offLogsPtr, logsSize)
	pos := 0
	for _, log := range f.Logs {
		copy(logsRegion[pos:], log.Address[:])
		binary.LittleEndian.PutUint32(logsRegion[pos+addressSize:], uint32(len(log.Topics)))
		binary.LittleEndian.PutUint32(logsRegion[pos+addressSize+4:], uint32(len(log.Data)))
		pos += logEntryHeaderSize
		for _, topic := range log.Topics {
			copy(logsRegion[pos:], topic[:])
			pos += wordSize
		}
		copy(logsRegion[pos:], log.Data)
		pos += len(log.Data)
	}

	warmRegion := region(offWarmAddressesPtr, len(f.WarmAddresses)*addressSize+len(f.WarmSlots)*warmSlotSize)
	pos = 0
	for _, address := range f.WarmAddresses {
		copy(warmRegion[pos:], address[:])
		pos += addressSize
	}
	for _, slot := range f.WarmSlots {
		copy(warmRegion[pos:], slot.Address[:])
		copy(warmRegion[pos+addressSize:], slot.Key[:])
		pos += warmSlotSize
	}

	putU32(offCodeSize, uint32(len(f.Code)))
	putU32(offInputSize, uint32(len(f.Input)))
	putU32(offOutputSize, uint32(len(f.Output)))
	putU32(offReturnDataSize, uint32(len(f.ReturnData)))
	putU32(offLogsCount, uint32(len(f.Logs)))
	putU32(offWarmAddressCount, uint32(len(f.WarmAddresses)))
	putU32(offWarmStorageCount, uint32(len(f.WarmSlots)))

	copy(buf[offRecipient:], f.Recipient[:])
	copy(buf[offSender:], f.Sender[:])
	copy(buf[offContract:], f.Contract[:])
	copy(buf[offOriginator:], f.Originator[:])
	copy(buf[offMiningBeneficiary:], f.MiningBeneficiary[:])
	copy(buf[offValue:], f.Value[:])
	copy(buf[offApparentValue:], f.ApparentValue[:])
	copy(buf[offGasPrice:], f.GasPrice[:])

	putU32(offHaltReason, uint32(f.HaltReason))

	return buf, nil
}

// UnmarshalBinary decodes a frame from the version 1 layout, validating
// every offset and size against the buffer bounds before use.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("buffer of %d bytes is smaller than the %d byte header", len(data), HeaderSize)
	}

	getU32 := func(off int) uint32 { return binary.LittleEndian.Uint32(data[off:]) }
	getU64 := func(off int) uint64 { return binary.LittleEndian.Uint64(data[off:]) }

	f.PC = int32(getU32(offPC))
	f.Section = int32(getU32(offSection))
	f.GasRemaining = wevm.Gas(getU64(offGasRemaining))
	f.GasRefund = wevm.Gas(getU64(offGasRefund))
	f.State = wevm.State(getU32(offState))
	f.Type = wevm.FrameType(getU32(offType))
	f.Static = getU32(offIsStatic) != 0
	f.Depth = getU32(offDepth)
	f.HaltReason = wevm.HaltReason(getU32(offHaltReason))

	stackSize := getU32(offStackSize)
	if stackSize > maxStackItems {
		return fmt.Errorf("stack size %d exceeds maximum of %d", stackSize, maxStackItems)
	}
	region := func(name string, ptrOff int, size uint64) ([]byte, error) {
		if size > math.MaxInt32 {
			return nil, fmt.Errorf("%s size %d exceeds signed 32-bit range", name, size)
		}
		if size == 0 {
			return nil, nil
		}
		offset := getU64(ptrOff)
		if offset < HeaderSize || offset > uint64(len(data)) || size > uint64(len(data))-offset {
			return nil, fmt.Errorf("%s region [%d:%d+%d] escapes buffer of %d bytes", name, offset, offset, size, len(data))
		}
		return data[offset : offset+size], nil
	}

	stackRegion, err := region("stack", offStackPtr, uint64(stackSize)*stackItemSize)
	if err != nil {
		return err
	}
	f.Stack = nil
	if stackSize > 0 {
		f.Stack = make([]wevm.Word, stackSize)
		for i := range f.Stack {
			copy(f.Stack[i][:], stackRegion[i*stackItemSize:])
		}
	}

	if f.Memory, err = region("memory", offMemoryPtr, uint64(getU32(offMemorySize))); err != nil {
		return err
	}
	var raw []byte
	if raw, err = region("code", offCodePtr, uint64(getU32(offCodeSize))); err != nil {
		return err
	}
	f.Code = wevm.Code(raw)
	if raw, err = region("input", offInputPtr, uint64(getU32(offInputSize))); err != nil {
		return err
	}
	f.Input = wevm.Data(raw)
	if raw, err = region("output", offOutputPtr, uint64(getU32(offOutputSize))); err != nil {
		return err
	}
	f.Output = wevm.Data(raw)
	if raw, err = region("return data", offReturnDataPtr, uint64(getU32(offReturnDataSize))); err != nil {
		return err
	}
	f.ReturnData = wevm.Data(raw)

	if err := f.decodeLogs(data, getU64(offLogsPtr), getU32(offLogsCount)); err != nil {
		return err
	}

	warmAddressCount := uint64(getU32(offWarmAddressCount))
	warmSlotCount := uint64(getU32(offWarmStorageCount))
	warmRegion, err := region("warm set", offWarmAddressesPtr, warmAddressCount*addressSize+warmSlotCount*warmSlotSize)
	if err != nil {
		return err
	}
	f.WarmAddresses = nil
	f.WarmSlots = nil
	pos := 0
	if warmAddressCount > 0 {
		f.WarmAddresses = make([]wevm.Address, warmAddressCount)
		for i := range f.WarmAddresses {
			copy(f.WarmAddresses[i][:], warmRegion[pos:])
			pos += addressSize
		}
	}
	if warmSlotCount > 0 {
		f.WarmSlots = make([]WarmSlot, warmSlotCount)
		for i := range f.WarmSlots {
			copy(f.WarmSlots[i].Address[:], warmRegion[pos:])
			copy(f.WarmSlots[i].Key[:], warmRegion[pos+addressSize:])
			pos += warmSlotSize
		}
	}

	copy(f.Recipient[:], data[offRecipient:])
	copy(f.Sender[:], data[offSender:])
	copy(f.Contract[:], data[offContract:])
	copy(f.Originator[:], data[offOriginator:])
	copy(f.MiningBeneficiary[:], data[offMiningBeneficiary:])
	copy(f.Value[:], data[offValue:])
	copy(f.ApparentValue[:], data[offApparentValue:])
	copy(f.GasPrice[:], data[offGasPrice:])

	return nil
}

func (f *Frame) decodeLogs(data []byte, offset uint64, count uint32) error {
	f.Logs = nil
	if count == 0 {
		return nil
	}
	f.Logs = make([]wevm.Log, 0, count)
	pos := offset
	remaining := func() uint64 {
		if pos > uint64(len(data)) {
			return 0
		}
		return uint64(len(data)) - pos
	}
	for i := uint32(0); i < count; i++ {
		if remaining() < logEntryHeaderSize {
			return fmt.Errorf("log %d escapes buffer of %d bytes", i, len(data))
		}
		var log wevm.Log
		copy(log.Address[:], data[pos:])
		topicCount := uint64(binary.LittleEndian.Uint32(data[pos+addressSize:]))
		dataSize := uint64(binary.LittleEndian.Uint32(data[pos+addressSize+4:]))
		pos += logEntryHeaderSize
		if remaining() < topicCount*wordSize+dataSize {
			return fmt.Errorf("log %d escapes buffer of %d bytes", i, len(data))
		}
		if topicCount > 0 {
			log.Topics = make([]wevm.Hash, topicCount)
			for t := range log.Topics {
				copy(log.Topics[t][:], data[pos:])
				pos += wordSize
			}
		}
		if dataSize > 0 {
			log.Data = wevm.Data(data[pos : pos+dataSize])
			pos += dataSize
		}
		f.Logs = append(f.Logs, log)
	}
	return nil
}
