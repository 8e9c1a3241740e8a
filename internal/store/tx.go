package store

import (
	"context"

	"github.com/uptrace/bun"
)

// RunInTx runs fn inside a transaction on db. The transaction commits when fn
// returns nil and rolls back otherwise, including on panic.
func RunInTx(ctx context.Context, db bun.IDB, fn func(ctx context.Context, tx bun.Tx) error) error {
	return db.RunInTx(ctx, nil, fn)
}
