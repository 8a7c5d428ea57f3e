package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tally-network/tally-daemon/internal/core/application"
)

var debit = cli.Command{
	Name:  "debit",
	Usage: "remove value from an owner's balance",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "owner",
			Usage:    "identity to debit",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "amount to debit, in base units",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "fee",
			Usage: "fee paid on top of the debited amount",
		},
	},
	Action: debitAction,
}

func debitAction(ctx *cli.Context) error {
	owner := ctx.String("owner")
	amount := ctx.Uint64("amount")
	fee := ctx.Uint64("fee")

	return withService(func(svc *application.LedgerService) error {
		if err := svc.Debit(context.Background(), owner, amount, fee); err != nil {
			return err
		}
		fmt.Printf("debited %d (fee %d) from %s\n", amount, fee, owner)
		return nil
	})
}
