package audit

import (
	"context"
	"time"
)

// SystemActor is recorded while requests carry no identity.
const SystemActor = "SYSTEM"

// Auditor resolves who is performing the current operation.
type Auditor interface {
	CurrentActor(ctx context.Context) string
}

// System attributes every change to SystemActor.
type System struct{}

func (System) CurrentActor(context.Context) string {
	return SystemActor
}

// Fields holds the audit columns shared by all tables. Embed it in a bun model.
type Fields struct {
	CreatedAt time.Time `bun:"created_at,notnull"`
	CreatedBy string    `bun:"created_by,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
	UpdatedBy string    `bun:"updated_by,notnull"`
}

// Stamp fills the creation and modification columns.
func (f *Fields) Stamp(actor string, now time.Time) {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
		f.CreatedBy = actor
	}
	f.UpdatedAt = now
	f.UpdatedBy = actor
}

// Auditable is implemented by models embedding Fields.
type Auditable interface {
	Stamp(actor string, now time.Time)
}
