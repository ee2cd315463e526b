// Copyright (c) 2026 Witness Labs
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2030-08-01
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"time"

	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"
	"github.com/witnesslabs/wevm"
	"github.com/witnesslabs/wevm/interpreter"
	"github.com/witnesslabs/wevm/witness"
)

var BenchCmd = cli.Command{
	Action:    doBench,
	Name:      "bench",
	Usage:     "Measure the execution throughput of a code snippet",
	ArgsUsage: "<code in hex>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "input",
			Usage: "call data passed to the code, in hex",
		},
		&cli.Int64Flag{
			Name:  "gas",
			Usage: "gas stipend for each execution",
			Value: 1_000_000,
		},
		&cli.DurationFlag{
			Name:  "duration",
			Usage: "how long to keep executing",
			Value: 3 * time.Second,
		},
	},
}

func doBench(context *cli.Context) error {
	if context.Args().Len() < 1 {
		return fmt.Errorf("missing code argument")
	}
	code, err := decodeHex(context.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid code: %w", err)
	}
	input, err := decodeHex(context.String("input"))
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	codeHash := interpreter.Keccak256(code)
	params := interpreter.Parameters{
		Gas:      wevm.Gas(context.Int64("gas")),
		Input:    input,
		Code:     code,
		CodeHash: &codeHash,
	}

	vm, err := interpreter.New(interpreter.Config{})
	if err != nil {
		return err
	}

	duration := context.Duration("duration")
	var executions uint64
	var gasUsed uint64
	start := time.Now()
	for time.Since(start) < duration {
		store := witness.NewStore(16, 16)
		if _, err := store.PreloadAccount(params.Recipient); err != nil {
			return err
		}
		result, err := vm.Run(params, store)
		if err != nil {
			return err
		}
		if result.State == wevm.ExceptionalHalt {
			return fmt.Errorf("execution halted: %v", result.HaltReason)
		}
		executions++
		gasUsed += uint64(params.Gas - result.GasLeft)
	}
	elapsed := time.Since(start)

	seconds := elapsed.Seconds()
	fmt.Printf("executions: %d in %v\n", executions, elapsed.Round(time.Millisecond))
	fmt.Printf("rate:       %s executions per second\n",
		unitconv.FormatPrefix(float64(executions)/seconds, unitconv.SI, 2))
	fmt.Printf("throughput: %s gas per second\n",
		unitconv.FormatPrefix(float64(gasUsed)/seconds, unitconv.SI, 2))
	return nil
}
