package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// newTestDatabase connects to TEST_DATABASE_URL, migrates it and empties the
// tables. Tests are skipped without a database.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, database.RunMigrations(db))
	truncateAllTables(t, db)
	return db
}

func truncateAllTables(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()
	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, "TRUNCATE TABLE bank_movements, attendances, employees CASCADE")
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
}
