package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tally-network/tally-daemon/internal/config"
)

func TestDefaults(t *testing.T) {
	require.Equal(t, config.DBBadger, config.GetString(config.DBTypeKey))
	require.Equal(t, "main", config.GetString(config.LedgerKeyKey))
	require.Equal(
		t,
		config.StrategyLargestFirst,
		config.GetString(config.SelectionStrategyKey),
	)
	require.Zero(t, config.GetInt(config.AmountPrecisionKey))
	require.NotEmpty(t, config.GetDatadir())
	require.NoError(t, config.Validate())
}

func TestValidate(t *testing.T) {
	t.Cleanup(func() {
		config.Set(config.DBTypeKey, config.DBBadger)
		config.Set(config.SelectionStrategyKey, config.StrategyLargestFirst)
	})

	config.Set(config.DBTypeKey, "postgres")
	require.Error(t, config.Validate())
	config.Set(config.DBTypeKey, config.DBInMemory)
	require.NoError(t, config.Validate())

	config.Set(config.SelectionStrategyKey, "random")
	require.Error(t, config.Validate())
	config.Set(config.SelectionStrategyKey, config.StrategyExactMatch)
	require.NoError(t, config.Validate())
}
