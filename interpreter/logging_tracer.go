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
	"io"
	"os"

	"github.com/witnesslabs/wevm"
)

// LoggingTracer logs every executed instruction to an io.Writer. If no
// writer is provided with NewLoggingTracer, the log is written to os.Stderr.
type LoggingTracer struct {
	log io.Writer
}

// NewLoggingTracer creates a tracer that writes to the provided io.Writer.
func NewLoggingTracer(writer io.Writer) *LoggingTracer {
	if writer == nil {
		writer = os.Stderr
	}
	return &LoggingTracer{log: writer}
}

func (l *LoggingTracer) TracePreExecution(frame wevm.FrameView) {
	// log format: <pc>, <op>, <gas>, <top-of-stack>\n
	top := "-empty-"
	if frame.StackSize() > 0 {
		item := frame.StackItem(0)
		top = item.String()
	}
	fmt.Fprintf(l.log, "%5d, %v, %d, %v\n",
		frame.PC(), OpCode(frame.Opcode()), frame.GasRemaining(), top)
}

func (l *LoggingTracer) TracePostExecution(frame wevm.FrameView, result wevm.OperationResult) {
	// Pre-execution lines carry all the information needed for a trace.
}
