package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tally-network/tally-daemon/internal/core/application"
	"github.com/tally-network/tally-daemon/internal/core/domain"
)

var initledger = cli.Command{
	Name:  "init",
	Usage: "seed a brand new ledger with its founding outputs",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:     "output",
			Usage:    "founding output as <owner>:<amount>, repeatable",
			Required: true,
		},
	},
	Action: initLedgerAction,
}

func initLedgerAction(ctx *cli.Context) error {
	idgen := domain.NewIDGenerator()

	outputs := make([]domain.Output, 0)
	for _, raw := range ctx.StringSlice("output") {
		parts := strings.SplitN(raw, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid output %q, expected <owner>:<amount>", raw)
		}
		amount, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amount in output %q: %s", raw, err)
		}
		out, err := domain.NewOutputForOwner(idgen.OutputID(amount), amount, parts[0])
		if err != nil {
			return err
		}
		outputs = append(outputs, out)
	}

	return withService(func(svc *application.LedgerService) error {
		if err := svc.InitLedger(context.Background(), outputs); err != nil {
			return err
		}
		fmt.Printf("ledger initialized with %d founding output(s)\n", len(outputs))
		return nil
	})
}
