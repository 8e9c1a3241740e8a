package testdb

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"academy-service/internal/config"
	"academy-service/internal/db"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// NewSQLite opens a private in-memory database for t and creates the tables
// for models. The pool holds a single connection, so code under test must
// route every statement inside a transaction through that transaction.
func NewSQLite(t *testing.T, models ...interface{}) *bun.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	database, err := db.New(config.DatabaseConfig{
		Driver:       db.DriverSQLite,
		Path:         fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close(database)
	})

	if len(models) > 0 {
		require.NoError(t, db.RunMigrations(context.Background(), database, models...))
	}

	return database
}
