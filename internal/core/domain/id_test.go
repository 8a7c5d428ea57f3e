package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tally-network/tally-daemon/internal/core/domain"
)

func TestNewOutputID(t *testing.T) {
	id, err := domain.NewOutputID("out_1:genesis.0-a")
	require.NoError(t, err)
	require.Equal(t, "out_1:genesis.0-a", id.String())
}

func TestFailingNewOutputID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"too_long", strings.Repeat("a", 65)},
		{"whitespace", "out 1"},
		{"disallowed_chars", "out#1"},
		{"non_ascii", "outpüt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewOutputID(tt.id)
			require.ErrorIs(t, err, domain.ErrInvalidIdentifier)

			_, err = domain.NewTxID(tt.id)
			require.ErrorIs(t, err, domain.ErrInvalidIdentifier)
		})
	}
}

func TestIDGenerator(t *testing.T) {
	idgen := domain.NewIDGenerator()

	seen := make(map[domain.OutputID]struct{})
	for i := 0; i < 1000; i++ {
		id := idgen.OutputID(100)
		require.Len(t, id.String(), 32)

		_, err := domain.NewOutputID(id.String())
		require.NoError(t, err)

		_, ok := seen[id]
		require.False(t, ok)
		seen[id] = struct{}{}
	}

	txID := idgen.TxID()
	require.Len(t, txID.String(), 32)
}
