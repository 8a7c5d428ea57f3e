package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tally-network/tally-daemon/internal/core/application"
)

var transfer = cli.Command{
	Name:  "transfer",
	Usage: "move value between owners",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "from",
			Usage:    "identity to take value from",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "identity receiving the value",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "amount to move, in base units",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "fee",
			Usage: "fee paid by the sender on top of the amount",
		},
	},
	Action: transferAction,
}

func transferAction(ctx *cli.Context) error {
	from := ctx.String("from")
	to := ctx.String("to")
	amount := ctx.Uint64("amount")
	fee := ctx.Uint64("fee")

	return withService(func(svc *application.LedgerService) error {
		if err := svc.Transfer(context.Background(), from, to, amount, fee); err != nil {
			return err
		}
		fmt.Printf("transferred %d (fee %d) from %s to %s\n", amount, fee, from, to)
		return nil
	})
}
