package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("in-memory pool is pinned to one connection", func(t *testing.T) {
		db, err := New(ctx, WithDriver("sqlite3"), WithDataSource(":memory:"), WithMaxOpenConns(10))
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, 1, db.Stats().MaxOpenConnections)
	})

	t.Run("setup functions run", func(t *testing.T) {
		var called bool
		db, err := New(ctx, WithSetup(func(ctx context.Context, db *sql.DB) error {
			called = true
			_, err := db.ExecContext(ctx, `CREATE TABLE t (id INTEGER)`)
			return err
		}))
		require.NoError(t, err)
		defer db.Close()

		assert.True(t, called)
		_, err = db.Exec(`INSERT INTO t (id) VALUES (1)`)
		assert.NoError(t, err)
	})

	t.Run("setup failure", func(t *testing.T) {
		_, err := New(ctx, WithSetup(func(context.Context, *sql.DB) error {
			return errors.New("boom")
		}))

		assert.ErrorContains(t, err, "database setup")
	})

	t.Run("empty driver", func(t *testing.T) {
		_, err := New(ctx, WithDriver(""))
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := New(ctx, WithDriver("nope"), WithRetry(1, time.Millisecond))
		assert.ErrorContains(t, err, "failed to connect to database after 1 attempts")
	})
}
