package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tally-network/tally-daemon/internal/core/application"
	"github.com/tally-network/tally-daemon/pkg/mathutil"
)

var unspents = cli.Command{
	Name:   "unspents",
	Usage:  "list all currently unspent outputs",
	Action: unspentsAction,
}

func unspentsAction(ctx *cli.Context) error {
	return withService(func(svc *application.LedgerService) error {
		infos, err := svc.ListUnspents(context.Background())
		if err != nil {
			return err
		}
		for _, info := range infos {
			owner := info.Owner
			if owner == "" {
				owner = "-"
			}
			fmt.Printf(
				"%s\t%s\t%s\t%s\n",
				info.ID,
				mathutil.FormatAmount(info.Amount, amountPrecision()),
				info.Lock,
				owner,
			)
		}
		return nil
	})
}
