package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/tally-network/tally-daemon/internal/config"
	"github.com/tally-network/tally-daemon/internal/core/application"
	"github.com/tally-network/tally-daemon/internal/core/domain"
	"github.com/tally-network/tally-daemon/internal/core/ports"
	dbbadger "github.com/tally-network/tally-daemon/internal/infrastructure/storage/db/badger"
	"github.com/tally-network/tally-daemon/internal/infrastructure/storage/db/inmemory"
)

func main() {
	app := cli.NewApp()

	app.Version = formatVersion()
	app.Name = "tally CLI"
	app.Usage = "Command line interface for operating a tally ledger"
	app.Commands = append(
		app.Commands,
		&initledger,
		&credit,
		&debit,
		&transfer,
		&balance,
		&unspents,
		&history,
		&info,
	)

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func formatVersion() string {
	return "0.1.0"
}

// withService opens the configured storage backend, runs the action and
// closes the backend afterwards.
func withService(fn func(*application.LedgerService) error) error {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	if err := config.Validate(); err != nil {
		return err
	}

	repoManager, err := openRepoManager()
	if err != nil {
		return err
	}
	defer repoManager.Close()

	svc, err := application.NewLedgerService(
		repoManager,
		nil,
		domain.NewLockRegistry(),
		config.GetString(config.LedgerKeyKey),
		strategyFromConfig(),
	)
	if err != nil {
		return err
	}
	return fn(svc)
}

func openRepoManager() (ports.RepoManager, error) {
	switch config.GetString(config.DBTypeKey) {
	case config.DBInMemory:
		return inmemory.NewRepoManager(), nil
	default:
		if err := config.InitDatadir(); err != nil {
			return nil, err
		}
		return dbbadger.NewRepoManager(config.GetDatadir(), nil)
	}
}

func strategyFromConfig() domain.SelectionStrategy {
	switch config.GetString(config.SelectionStrategyKey) {
	case config.StrategyFifo:
		return domain.FifoStrategy{}
	case config.StrategySmallestFirst:
		return domain.SmallestFirstStrategy{}
	case config.StrategyExactMatch:
		return domain.ExactMatchStrategy{}
	default:
		return domain.LargestFirstStrategy{}
	}
}

func amountPrecision() uint {
	precision := config.GetInt(config.AmountPrecisionKey)
	if precision < 0 {
		return 0
	}
	return uint(precision)
}
