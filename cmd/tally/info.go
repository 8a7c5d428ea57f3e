package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tally-network/tally-daemon/internal/core/application"
	"github.com/tally-network/tally-daemon/pkg/mathutil"
)

var info = cli.Command{
	Name:   "info",
	Usage:  "show ledger-wide totals and per-transaction fees",
	Action: infoAction,
}

func infoAction(ctx *cli.Context) error {
	return withService(func(svc *application.LedgerService) error {
		ledgerInfo, err := svc.GetLedgerInfo(context.Background())
		if err != nil {
			return err
		}
		precision := amountPrecision()
		fmt.Printf("unspent total:  %s (%d output(s))\n",
			mathutil.FormatAmount(ledgerInfo.TotalUnspentAmount, precision),
			ledgerInfo.NumUnspents,
		)
		fmt.Printf("minted total:   %s\n",
			mathutil.FormatAmount(ledgerInfo.TotalMinted, precision),
		)
		fmt.Printf("fees collected: %s\n",
			mathutil.FormatAmount(ledgerInfo.TotalFeesCollected, precision),
		)
		for txID, fee := range ledgerInfo.TxFees {
			fmt.Printf("  tx %s fee %s\n",
				txID, mathutil.FormatAmount(fee, precision),
			)
		}
		return nil
	})
}
