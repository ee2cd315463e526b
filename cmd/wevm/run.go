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
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
	"github.com/witnesslabs/wevm"
	"github.com/witnesslabs/wevm/interpreter"
	"github.com/witnesslabs/wevm/witness"
)

var RunCmd = cli.Command{
	Action:    doRunCode,
	Name:      "run",
	Usage:     "Execute EVM byte-code against a witness store",
	ArgsUsage: "<code in hex>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "input",
			Usage: "call data passed to the code, in hex",
		},
		&cli.Int64Flag{
			Name:  "gas",
			Usage: "gas stipend for the execution",
			Value: 1_000_000,
		},
		&cli.BoolFlag{
			Name:  "static",
			Usage: "execute in a static context, rejecting state changes",
		},
		&cli.StringFlag{
			Name:  "sender",
			Usage: "address the call originates from, 20 bytes in hex",
		},
		&cli.StringFlag{
			Name:  "recipient",
			Usage: "address receiving the call, 20 bytes in hex",
		},
		&cli.StringFlag{
			Name:  "value",
			Usage: "value transferred with the call, decimal or 0x-prefixed hex",
		},
		&cli.StringSliceFlag{
			Name:  "account",
			Usage: "pre-load an account as <address>=<balance>, repeatable",
		},
		&cli.StringSliceFlag{
			Name:  "storage",
			Usage: "pre-load a storage slot of the recipient as <key>=<value>, repeatable",
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "log every executed instruction to stderr",
		},
		&cli.BoolFlag{
			Name:  "stats",
			Usage: "print instruction statistics after the execution",
		},
	},
}

func doRunCode(context *cli.Context) error {
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

	params := interpreter.Parameters{
		Static: context.Bool("static"),
		Gas:    wevm.Gas(context.Int64("gas")),
		Input:  input,
		Code:   code,
	}
	if sender := context.String("sender"); sender != "" {
		if err := params.Sender.UnmarshalText([]byte(sender)); err != nil {
			return fmt.Errorf("invalid sender: %w", err)
		}
	}
	if recipient := context.String("recipient"); recipient != "" {
		if err := params.Recipient.UnmarshalText([]byte(recipient)); err != nil {
			return fmt.Errorf("invalid recipient: %w", err)
		}
	}
	params.Contract = params.Recipient
	if value := context.String("value"); value != "" {
		if params.Value, err = parseWord(value); err != nil {
			return fmt.Errorf("invalid value: %w", err)
		}
	}

	store, err := buildStore(context, params)
	if err != nil {
		return err
	}

	var tracer wevm.Tracer
	stats := interpreter.NewStatisticsTracer()
	switch {
	case context.Bool("stats"):
		tracer = stats
	case context.Bool("trace"):
		tracer = interpreter.NewLoggingTracer(os.Stderr)
	}

	vm, err := interpreter.New(interpreter.Config{Tracer: tracer})
	if err != nil {
		return err
	}
	result, err := vm.Run(params, store)
	if err != nil {
		return err
	}

	printResult(result)
	if context.Bool("stats") {
		fmt.Print(stats.Summary())
	}
	if result.State == wevm.ExceptionalHalt {
		return fmt.Errorf("execution halted: %v", result.HaltReason)
	}
	return nil
}

// buildStore assembles the witness store from the pre-load flags. The sender
// and recipient accounts are always present so value transfers and
// self-referential operations have accounts to work on.
func buildStore(context *cli.Context, params interpreter.Parameters) (*witness.Store, error) {
	accounts := context.StringSlice("account")
	slots := context.StringSlice("storage")
	store := witness.NewStore(len(accounts)+16, len(slots)+16)

	if _, err := store.PreloadAccount(params.Sender); err != nil {
		return nil, err
	}
	recipient, err := store.PreloadAccount(params.Recipient)
	if err != nil {
		return nil, err
	}
	recipient.Code = params.Code

	for _, spec := range accounts {
		addressText, balanceText, found := strings.Cut(spec, "=")
		if !found {
			return nil, fmt.Errorf("invalid account %q, expected <address>=<balance>", spec)
		}
		var address wevm.Address
		if err := address.UnmarshalText([]byte(addressText)); err != nil {
			return nil, fmt.Errorf("invalid account address: %w", err)
		}
		balance, err := parseWord(balanceText)
		if err != nil {
			return nil, fmt.Errorf("invalid account balance: %w", err)
		}
		entry, err := store.PreloadAccount(address)
		if err != nil {
			return nil, err
		}
		entry.Balance = balance
	}

	for _, spec := range slots {
		keyText, valueText, found := strings.Cut(spec, "=")
		if !found {
			return nil, fmt.Errorf("invalid storage slot %q, expected <key>=<value>", spec)
		}
		key, err := parseWord(keyText)
		if err != nil {
			return nil, fmt.Errorf("invalid storage key: %w", err)
		}
		value, err := parseWord(valueText)
		if err != nil {
			return nil, fmt.Errorf("invalid storage value: %w", err)
		}
		if _, err := store.PreloadStorage(params.Recipient, wevm.Key(key), value); err != nil {
			return nil, err
		}
	}

	return store, nil
}

func printResult(result interpreter.Result) {
	fmt.Printf("state:      %v\n", result.State)
	if result.State == wevm.ExceptionalHalt {
		fmt.Printf("halt:       %v\n", result.HaltReason)
	}
	fmt.Printf("gas left:   %d\n", result.GasLeft)
	fmt.Printf("gas refund: %d\n", result.GasRefund)
	if len(result.Output) > 0 {
		fmt.Printf("output:     0x%x\n", result.Output)
	}
	if len(result.RevertReason) > 0 {
		fmt.Printf("revert:     0x%x\n", result.RevertReason)
	}
	for _, log := range result.Logs {
		fmt.Printf("log:        %v topics=%v data=0x%x\n", log.Address, log.Topics, log.Data)
	}
	for _, address := range result.SelfDestructed {
		fmt.Printf("destroyed:  %v\n", address)
	}
}

func decodeHex(text string) ([]byte, error) {
	text = strings.TrimPrefix(text, "0x")
	return hex.DecodeString(text)
}

func parseWord(text string) (wevm.Word, error) {
	var (
		value *uint256.Int
		err   error
	)
	if strings.HasPrefix(text, "0x") {
		value, err = uint256.FromHex(text)
	} else {
		value, err = uint256.FromDecimal(text)
	}
	if err != nil {
		return wevm.Word{}, err
	}
	return wevm.WordFromUint256(value), nil
}
