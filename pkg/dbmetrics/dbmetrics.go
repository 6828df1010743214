// Package dbmetrics instruments *sql.DB with Prometheus query and pool metrics.
package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioService/pkg/metrics"
)

// DefaultStatsInterval is how often connection pool stats are sampled
const DefaultStatsInterval = 15 * time.Second

// DBExecutor is the query surface repositories depend on.
// Implemented by *sql.DB, *sql.Tx and *DB.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DB wraps *sql.DB and records the latency of every query
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap instruments db without starting pool stats collection
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault instruments db and samples pool stats every DefaultStatsInterval
// until stopCh is closed.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.collectStats(dbName, DefaultStatsInterval, stopCh)
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}
	status := "ok"
	if err != nil && err != sql.ErrNoRows {
		status = "error"
	}
	d.metrics.DBQueryDuration.
		WithLabelValues(Operation(query), status).
		Observe(time.Since(start).Seconds())
}

func (d *DB) collectStats(dbName string, interval time.Duration, stopCh <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-t.C:
			stats := d.db.Stats()
			d.metrics.DBOpenConnections.WithLabelValues(dbName).Set(float64(stats.OpenConnections))
			d.metrics.DBInUse.WithLabelValues(dbName).Set(float64(stats.InUse))
		}
	}
}

// Operation returns the leading SQL verb in lower case (select, insert, ...)
func Operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
