package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestNewDB_CreatesSchema(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.RecordControlChange("gain", 50, true))
	require.NoError(t, d.RecordTransition("OFF", "STANDBY"))
	require.NoError(t, d.RecordStats(10, 20, 1, 0))
}

func TestRecentTransitions_NewestFirst(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.RecordTransition("OFF", "STANDBY"))
	require.NoError(t, d.RecordTransition("STANDBY", "TRANSMIT"))
	require.NoError(t, d.RecordTransition("TRANSMIT", "STANDBY"))

	got, err := d.RecentTransitions(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "TRANSMIT", got[0].From)
	require.Equal(t, "STANDBY", got[0].To)
	require.Equal(t, "STANDBY", got[1].From)
	require.Equal(t, "TRANSMIT", got[1].To)
}

func TestRecentTransitions_EmptyWhenNoneLogged(t *testing.T) {
	d := openTestDB(t)

	got, err := d.RecentTransitions(10)
	require.NoError(t, err)
	require.Empty(t, got)
}
