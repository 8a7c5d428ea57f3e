package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tally-network/tally-daemon/internal/core/application"
)

var history = cli.Command{
	Name:  "history",
	Usage: "show the provenance of an output",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Usage:    "output id to query",
			Required: true,
		},
	},
	Action: historyAction,
}

func historyAction(ctx *cli.Context) error {
	outputID := ctx.String("output")

	return withService(func(svc *application.LedgerService) error {
		provenance, err := svc.GetOutputHistory(context.Background(), outputID)
		if err != nil {
			return err
		}
		fmt.Printf("output:     %s\n", provenance.OutputID)
		fmt.Printf("created by: %s\n", provenance.CreatedBy)
		if provenance.IsSpent() {
			fmt.Printf("spent by:   %s\n", provenance.SpentBy)
		} else {
			fmt.Println("spent by:   - (unspent)")
		}
		return nil
	})
}
