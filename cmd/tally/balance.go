package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tally-network/tally-daemon/internal/core/application"
	"github.com/tally-network/tally-daemon/pkg/mathutil"
)

var balance = cli.Command{
	Name:  "balance",
	Usage: "show the spendable balance of an owner",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "owner",
			Usage:    "identity to query",
			Required: true,
		},
	},
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	owner := ctx.String("owner")

	return withService(func(svc *application.LedgerService) error {
		info, err := svc.GetBalance(context.Background(), owner)
		if err != nil {
			return err
		}
		fmt.Printf(
			"%s: %s (%d output(s))\n",
			info.Owner,
			mathutil.FormatAmount(info.TotalAmount, amountPrecision()),
			info.NumOutputs,
		)
		return nil
	})
}
