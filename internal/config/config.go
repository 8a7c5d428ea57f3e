package config

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory storing the ledger state.
	DatadirKey = "DATADIR"
	// LogLevelKey sets the logging verbosity. For reference on the values
	// https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey switches the storage backend between those supported.
	DBTypeKey = "DB_TYPE"
	// LedgerKeyKey names the ledger operated on within the store.
	LedgerKeyKey = "LEDGER_KEY"
	// SelectionStrategyKey picks the default coin selection strategy for
	// credit/debit/transfer operations.
	SelectionStrategyKey = "SELECTION_STRATEGY"
	// AmountPrecisionKey is the number of decimals used when rendering
	// amounts, base units themselves stay integer.
	AmountPrecisionKey = "AMOUNT_PRECISION"
)

// Supported DB_TYPE values.
const (
	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

// Supported SELECTION_STRATEGY values.
const (
	StrategyFifo          = "fifo"
	StrategyLargestFirst  = "largest"
	StrategySmallestFirst = "smallest"
	StrategyExactMatch    = "exact"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("TALLY")
	vip.AutomaticEnv()

	homeDir, _ := os.UserHomeDir()
	vip.SetDefault(DatadirKey, filepath.Join(homeDir, ".tally-daemon"))
	vip.SetDefault(LogLevelKey, int(log.InfoLevel))
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(LedgerKeyKey, "main")
	vip.SetDefault(SelectionStrategyKey, StrategyLargestFirst)
	vip.SetDefault(AmountPrecisionKey, 0)
}

// Validate fails on unsupported enum values.
func Validate() error {
	switch dbType := GetString(DBTypeKey); dbType {
	case DBBadger, DBInMemory:
	default:
		return fmt.Errorf("unsupported db type %q", dbType)
	}
	switch strategy := GetString(SelectionStrategyKey); strategy {
	case StrategyFifo, StrategyLargestFirst, StrategySmallestFirst, StrategyExactMatch:
	default:
		return fmt.Errorf("unsupported selection strategy %q", strategy)
	}
	return nil
}

// InitDatadir makes sure the data directory exists.
func InitDatadir() error {
	return os.MkdirAll(GetDatadir(), 0700)
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetDatadir ...
func GetDatadir() string {
	return GetString(DatadirKey)
}

// Set overrides a config value, mainly for tests.
func Set(key string, value interface{}) {
	vip.Set(key, value)
}
