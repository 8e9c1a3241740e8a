package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"academy-service/internal/audit"
	"academy-service/internal/metrics"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("record not found")

// ID is the set of primary key types the repository supports.
type ID interface {
	~int64 | ~string
}

// QueryFunc narrows or orders a select query.
type QueryFunc func(q *bun.SelectQuery) *bun.SelectQuery

// Repository implements the CRUD operations shared by every table. T is the
// bun model struct; its primary key column must be "id".
type Repository[T any, K ID] struct {
	db      bun.IDB
	table   string
	auditor audit.Auditor
	metrics *metrics.DatabaseMetrics
	now     func() time.Time
}

func NewRepository[T any, K ID](db bun.IDB, table string, auditor audit.Auditor, m *metrics.DatabaseMetrics) *Repository[T, K] {
	if auditor == nil {
		auditor = audit.System{}
	}
	return &Repository[T, K]{
		db:      db,
		table:   table,
		auditor: auditor,
		metrics: m,
		now:     time.Now,
	}
}

// WithTx returns a copy bound to tx.
func (r *Repository[T, K]) WithTx(tx bun.IDB) *Repository[T, K] {
	cp := *r
	cp.db = tx
	return &cp
}

func (r *Repository[T, K]) DB() bun.IDB {
	return r.db
}

// Observe records how long an operation against the table took.
func (r *Repository[T, K]) Observe(ctx context.Context, operation string, start time.Time, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	r.metrics.RecordQuery(ctx, operation, r.table, time.Since(start), err)
}

// Create inserts entity and reads back generated columns.
func (r *Repository[T, K]) Create(ctx context.Context, entity *T) error {
	if a, ok := any(entity).(audit.Auditable); ok {
		a.Stamp(r.auditor.CurrentActor(ctx), r.now().UTC())
	}

	start := time.Now()
	_, err := r.db.NewInsert().Model(entity).Returning("*").Exec(ctx)
	r.Observe(ctx, "insert", start, err)

	return err
}

func (r *Repository[T, K]) FindByID(ctx context.Context, id K) (*T, error) {
	entity := new(T)

	start := time.Now()
	err := r.db.NewSelect().
		Model(entity).
		Where("?TableAlias.id = ?", id).
		Scan(ctx)
	r.Observe(ctx, "select", start, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entity, nil
}

// FindOne returns the first row matched by apply.
func (r *Repository[T, K]) FindOne(ctx context.Context, apply QueryFunc) (*T, error) {
	entity := new(T)

	start := time.Now()
	err := r.db.NewSelect().
		Model(entity).
		Apply(apply).
		Limit(1).
		Scan(ctx)
	r.Observe(ctx, "select", start, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entity, nil
}

// FindAll returns every row matched by apply; a nil apply matches all rows
// ordered by id.
func (r *Repository[T, K]) FindAll(ctx context.Context, apply QueryFunc) ([]T, error) {
	if apply == nil {
		apply = OrderByID
	}

	entities := make([]T, 0)

	start := time.Now()
	err := r.db.NewSelect().
		Model(&entities).
		Apply(apply).
		Scan(ctx)
	r.Observe(ctx, "select", start, err)

	return entities, err
}

// FindPage counts the rows matched by filter, then loads the requested
// window ordered by order.
func (r *Repository[T, K]) FindPage(ctx context.Context, req PageRequest, filter, order QueryFunc) (Page[T], error) {
	if filter == nil {
		filter = matchAll
	}
	if order == nil {
		order = OrderByID
	}

	start := time.Now()
	total, err := r.db.NewSelect().
		Model((*T)(nil)).
		Apply(filter).
		Count(ctx)
	r.Observe(ctx, "count", start, err)
	if err != nil {
		return Page[T]{}, err
	}

	entities := make([]T, 0, req.Size)

	start = time.Now()
	err = r.db.NewSelect().
		Model(&entities).
		Apply(filter).
		Apply(order).
		Limit(req.Size).
		Offset(req.Offset()).
		Scan(ctx)
	r.Observe(ctx, "select", start, err)
	if err != nil {
		return Page[T]{}, err
	}

	return NewPage(entities, req, int64(total)), nil
}

// Delete removes the row with id and reports whether it existed.
func (r *Repository[T, K]) Delete(ctx context.Context, id K) (bool, error) {
	start := time.Now()
	// Unqualified: not every dialect aliases the table in DELETE.
	res, err := r.db.NewDelete().
		Model((*T)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	r.Observe(ctx, "delete", start, err)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func OrderByID(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.id ASC")
}

func matchAll(q *bun.SelectQuery) *bun.SelectQuery {
	return q
}
