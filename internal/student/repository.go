package student

import (
	"context"
	"time"

	"academy-service/internal/audit"
	"academy-service/internal/metrics"
	"academy-service/internal/store"

	"github.com/uptrace/bun"
)

const tableName = "students"

type Repository interface {
	WithTx(tx bun.IDB) Repository
	Create(ctx context.Context, student *Student) error
	FindByID(ctx context.Context, id int64) (*Student, error)
	FindAll(ctx context.Context) ([]Student, error)
	FindPage(ctx context.Context, req store.PageRequest) (store.Page[Student], error)
	Search(ctx context.Context, criteria Criteria, req store.PageRequest) (store.Page[Student], error)
	FindByEmail(ctx context.Context, email string) (*Student, error)
	FindWithMinAge(ctx context.Context, minAge int) ([]Student, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	base *store.Repository[Student, int64]
}

func NewRepository(db bun.IDB, auditor audit.Auditor, m *metrics.DatabaseMetrics) Repository {
	return &repository{
		base: store.NewRepository[Student, int64](db, tableName, auditor, m),
	}
}

func (r *repository) WithTx(tx bun.IDB) Repository {
	return &repository{base: r.base.WithTx(tx)}
}

func (r *repository) Create(ctx context.Context, student *Student) error {
	return r.base.Create(ctx, student)
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Student, error) {
	return r.base.FindByID(ctx, id)
}

func (r *repository) FindAll(ctx context.Context) ([]Student, error) {
	return r.base.FindAll(ctx, store.OrderByID)
}

func (r *repository) FindPage(ctx context.Context, req store.PageRequest) (store.Page[Student], error) {
	return r.base.FindPage(ctx, req, nil, store.OrderByID)
}

func (r *repository) Search(ctx context.Context, criteria Criteria, req store.PageRequest) (store.Page[Student], error) {
	return r.base.FindPage(ctx, req, criteria.Where, criteria.OrderBy)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Student, error) {
	return r.base.FindOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.email = ?", email)
	})
}

func (r *repository) FindWithMinAge(ctx context.Context, minAge int) ([]Student, error) {
	students := make([]Student, 0)

	start := time.Now()
	err := r.base.DB().NewSelect().
		Model(&students).
		Where("?TableAlias.age >= ?", minAge).
		OrderExpr("?TableAlias.name ASC").
		Scan(ctx)
	r.base.Observe(ctx, "select", start, err)

	return students, err
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.base.Delete(ctx, id)
}
