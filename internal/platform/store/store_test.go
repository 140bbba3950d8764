package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreMemory}

	repos, closeFn, err := Open(context.Background(), cfg, discardLogger(), true)
	require.NoError(t, err)
	defer closeFn()

	assert.NotNil(t, repos.TxManager)
	assert.NotNil(t, repos.AccountRepo)
	assert.NotNil(t, repos.JournalRepo)
	assert.NotNil(t, repos.SequenceRepo)
}

func TestOpen_UnknownStore(t *testing.T) {
	cfg := &config.Config{Store: "sqlite"}

	_, _, err := Open(context.Background(), cfg, discardLogger(), false)
	assert.ErrorContains(t, err, "unknown store")
}
