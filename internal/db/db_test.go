package db_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"academy-service/internal/config"
	"academy-service/internal/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

type author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Email string `bun:"email,notnull,unique"`
}

type book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID       int64  `bun:"id,pk,autoincrement"`
	Title    string `bun:"title,notnull"`
	AuthorID int64  `bun:"author_id,notnull"`
}

func (*book) ForeignKeys() []string {
	return []string{`("author_id") REFERENCES "authors" ("id") ON DELETE CASCADE`}
}

func (*book) Indexes() []db.Index {
	return []db.Index{{Name: "books_author_id_idx", Columns: []string{"author_id"}}}
}

func TestRunMigrationsIssuesDDLPerModel(t *testing.T) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqldb.Close()

	database := bun.NewDB(sqldb, pgdialect.New())

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "authors"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "books" .*FOREIGN KEY \("author_id"\) REFERENCES "authors" \("id"\) ON DELETE CASCADE`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX IF NOT EXISTS "books_author_id_idx" ON "books"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = db.RunMigrations(context.Background(), database, (*author)(nil), (*book)(nil))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsStopsOnError(t *testing.T) {
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqldb.Close()

	database := bun.NewDB(sqldb, pgdialect.New())

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

	err = db.RunMigrations(context.Background(), database, (*author)(nil), (*book)(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := db.New(config.DatabaseConfig{Driver: "oracle"})
	assert.EqualError(t, err, `unsupported database driver "oracle"`)
}

func TestPostgresDSN(t *testing.T) {
	dsn := db.PostgresDSN(config.DatabaseConfig{
		User: "u", Password: "p", Host: "h", Port: "5432", DBName: "academy",
	})
	assert.Equal(t, "postgres://u:p@h:5432/academy?sslmode=disable", dsn)
}

func TestSQLiteConstraintClassification(t *testing.T) {
	ctx := context.Background()

	database, err := db.New(config.DatabaseConfig{
		Driver:       db.DriverSQLite,
		Path:         fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	defer db.Close(database)

	require.NoError(t, db.RunMigrations(ctx, database, (*author)(nil), (*book)(nil)))

	a := &author{Email: "a@example.com"}
	_, err = database.NewInsert().Model(a).Exec(ctx)
	require.NoError(t, err)

	_, err = database.NewInsert().Model(&author{Email: "a@example.com"}).Exec(ctx)
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))
	assert.False(t, db.IsForeignKeyViolation(err))

	_, err = database.NewInsert().Model(&book{Title: "orphan", AuthorID: 999}).Exec(ctx)
	require.Error(t, err)
	assert.True(t, db.IsForeignKeyViolation(err))
	assert.False(t, db.IsUniqueViolation(err))
}

func TestClassificationIgnoresOtherErrors(t *testing.T) {
	assert.False(t, db.IsUniqueViolation(errors.New("boom")))
	assert.False(t, db.IsForeignKeyViolation(nil))

	wrapped := fmt.Errorf("insert: %w", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})
	assert.True(t, db.IsUniqueViolation(wrapped))
}
