package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-StudioService/pkg/metrics"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", Operation("  SELECT id FROM rooms"))
	assert.Equal(t, "insert", Operation("INSERT INTO rooms VALUES (1)"))
	assert.Equal(t, "unknown", Operation(""))
}

func TestDB_ObservesQueries(t *testing.T) {
	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { raw.Close() })

	m := metrics.New("studio")
	db := Wrap(raw, m)
	ctx := context.Background()

	_, err = db.ExecContext(ctx, "CREATE TABLE rooms (number INTEGER)")
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms").Scan(&n))
	assert.Equal(t, 0, n)

	assert.Equal(t, 2, testutil.CollectAndCount(m.DBQueryDuration))
}
