package migrate

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:migrate_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return conn
}

func TestUpCreatesSchema(t *testing.T) {
	conn := openTestDB(t)

	sqlDB, err := conn.DB()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, Up(ctx, sqlDB))

	for _, table := range []string{"books", "users", "orders", "order_items"} {
		var count int64
		err := conn.Raw(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&count).Error
		require.NoError(t, err)
		require.Equal(t, int64(1), count, "table %s should exist", table)
	}

	// A second run must be a no-op.
	require.NoError(t, Up(ctx, sqlDB))

	version, err := Version(ctx, sqlDB)
	require.NoError(t, err)
	require.Equal(t, int64(1), version)
}

func TestUpEnforcesQuantityCheck(t *testing.T) {
	conn := openTestDB(t)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, Up(context.Background(), sqlDB))

	err = conn.Exec(`INSERT INTO order_items (id, order_id, book_id, quantity, unit_price)
		VALUES ('x', 'y', 1, 0, 10)`).Error
	require.Error(t, err, "zero quantity must be rejected by the schema")
}
