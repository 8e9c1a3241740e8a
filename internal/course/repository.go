package course

import (
	"context"

	"academy-service/internal/audit"
	"academy-service/internal/metrics"
	"academy-service/internal/store"

	"github.com/uptrace/bun"
)

type Repository interface {
	WithTx(tx bun.IDB) Repository
	Create(ctx context.Context, course *Course) error
	FindByID(ctx context.Context, id int64) (*Course, error)
	FindByStudentID(ctx context.Context, studentID int64) ([]Course, error)
}

type repository struct {
	base *store.Repository[Course, int64]
}

func NewRepository(db bun.IDB, auditor audit.Auditor, m *metrics.DatabaseMetrics) Repository {
	return &repository{
		base: store.NewRepository[Course, int64](db, "courses", auditor, m),
	}
}

func (r *repository) WithTx(tx bun.IDB) Repository {
	return &repository{base: r.base.WithTx(tx)}
}

func (r *repository) Create(ctx context.Context, course *Course) error {
	return r.base.Create(ctx, course)
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Course, error) {
	return r.base.FindByID(ctx, id)
}

func (r *repository) FindByStudentID(ctx context.Context, studentID int64) ([]Course, error) {
	return r.base.FindAll(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("?TableAlias.student_id = ?", studentID).
			OrderExpr("?TableAlias.id ASC")
	})
}
