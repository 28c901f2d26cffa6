package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/auragold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() auragold.State {
	return auragold.State{
		Ledgers: []auragold.Ledger{
			{ID: "L1", Name: "Main", CreatedAt: 1000, Records: []auragold.TradeRecord{
				{ID: "r2", Grams: 2.5, CostPrice: 480.25, SellingPrice: 510, HandlingFeeRate: 0.004, ActualProfit: 69.3, DesiredPrice: 520, ProjectedProfit: 94.7, ProfitMargin: 0.0577, Timestamp: 2000},
				{ID: "r1", Grams: 10, CostPrice: 500, SellingPrice: 490, ActualProfit: -100, DesiredPrice: 505, ProjectedProfit: 50, ProfitMargin: -0.02, Timestamp: 1500},
			}},
			{ID: "L2", Name: "Side", CreatedAt: 3000, Records: []auragold.TradeRecord{}},
		},
		ActiveLedgerID: "L2",
		Lang:           auragold.LangZh,
		Theme:          auragold.ThemeDark,
	}
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	f := NewFile(path)
	f.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, f.Save(ctx, sampleState()))

	got, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"schema": "auragold.export"`)
	assert.Contains(t, string(data), `"exportedAt": "2025-01-01T00:00:00.000Z"`)

	// no temporary file is left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileLoadMissing(t *testing.T) {
	t.Parallel()
	f := NewFile(filepath.Join(t.TempDir(), "missing.json"))

	got, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Ledgers)
	assert.Empty(t, got.ActiveLedgerID)
}

func TestFileLoadCorrupted(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schema":`), 0644))

	_, err := NewFile(path).Load(context.Background())
	assert.ErrorIs(t, err, auragold.ErrMalformedJSON)
}

func TestFileLoadLegacyArray(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"L","name":"n","createdAt":1,"records":[]}]`), 0644))

	got, err := NewFile(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Ledgers, 1)
	assert.Equal(t, "L", got.ActiveLedgerID)
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, sampleState()))
	require.NoError(t, s.Close())

	// reopen to make sure everything was committed.
	s, err = OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)
}

func TestSQLiteSaveReplaces(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Save(ctx, sampleState()))
	smaller := auragold.State{Ledgers: []auragold.Ledger{{ID: "L9", Name: "Only", CreatedAt: 5, Records: []auragold.TradeRecord{}}}}
	require.NoError(t, s.Save(ctx, smaller))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, smaller, got)
}

func TestSQLiteEmpty(t *testing.T) {
	t.Parallel()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, auragold.State{}, got)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	st, closer, err := Open(DriverFile, filepath.Join(dir, "state.json"))
	require.NoError(t, err)
	assert.IsType(t, &File{}, st)
	assert.NoError(t, closer())

	st, closer, err = Open(DriverSQLite, filepath.Join(dir, "state.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, st)
	assert.NoError(t, closer())

	_, _, err = Open("redis", "")
	assert.Error(t, err)
}
