package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tally-network/tally-daemon/internal/core/application"
)

var credit = cli.Command{
	Name:  "credit",
	Usage: "mint new value to an owner",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "owner",
			Usage:    "identity the minted output is locked to",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "amount to mint, in base units",
			Required: true,
		},
	},
	Action: creditAction,
}

func creditAction(ctx *cli.Context) error {
	owner := ctx.String("owner")
	amount := ctx.Uint64("amount")

	return withService(func(svc *application.LedgerService) error {
		if err := svc.Credit(context.Background(), owner, amount); err != nil {
			return err
		}
		fmt.Printf("credited %d to %s\n", amount, owner)
		return nil
	})
}
