package audit_test

import (
	"context"
	"testing"
	"time"

	"academy-service/internal/audit"

	"github.com/stretchr/testify/assert"
)

func TestSystemAuditor(t *testing.T) {
	var a audit.Auditor = audit.System{}
	assert.Equal(t, "SYSTEM", a.CurrentActor(context.Background()))
}

func TestStampKeepsCreation(t *testing.T) {
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	var f audit.Fields
	f.Stamp("SYSTEM", first)
	f.Stamp("alice", later)

	assert.Equal(t, first, f.CreatedAt)
	assert.Equal(t, "SYSTEM", f.CreatedBy)
	assert.Equal(t, later, f.UpdatedAt)
	assert.Equal(t, "alice", f.UpdatedBy)
}
