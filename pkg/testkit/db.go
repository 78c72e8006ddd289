package testkit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aferchichi/stockshop/pkg/database"
)

// SetupDB opens a fresh in-memory sqlite database, migrates the given models,
// and drops their tables when the test finishes. Tests that hit the store
// call this once at the top.
func SetupDB(t *testing.T, models ...interface{}) {
	t.Helper()

	require.NoError(t, database.ConnectTest(), "open test database")
	require.NoError(t, database.DB.AutoMigrate(models...), "migrate test models")

	t.Cleanup(func() {
		for _, m := range models {
			database.DB.Migrator().DropTable(m) //nolint:errcheck
		}
	})
}
