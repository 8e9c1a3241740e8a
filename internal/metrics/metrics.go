package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	Database *DatabaseMetrics
	Health   *HealthMetrics

	studentsCreated metric.Int64Counter
	coursesCreated  metric.Int64Counter
	studentSearches metric.Int64Counter
	studentsViewed  metric.Int64Counter
}

// New registers the instruments on the global meter provider. Without a
// configured provider the instruments are no-ops.
func New(serviceName string, logger *slog.Logger) (*Metrics, error) {
	return NewWithMeter(otel.Meter(serviceName), logger)
}

func NewWithMeter(meter metric.Meter, logger *slog.Logger) (*Metrics, error) {
	database, err := NewDatabaseMetrics(meter)
	if err != nil {
		return nil, err
	}

	health, err := NewHealthMetrics(meter)
	if err != nil {
		return nil, err
	}

	m := &Metrics{Database: database, Health: health}

	m.studentsCreated, err = meter.Int64Counter(
		"academy.students.created",
		metric.WithDescription("Total number of students created"),
		metric.WithUnit("{student}"),
	)
	if err != nil {
		return nil, err
	}

	m.coursesCreated, err = meter.Int64Counter(
		"academy.courses.created",
		metric.WithDescription("Total number of courses created"),
		metric.WithUnit("{course}"),
	)
	if err != nil {
		return nil, err
	}

	m.studentSearches, err = meter.Int64Counter(
		"academy.students.searches",
		metric.WithDescription("Total number of student searches"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		return nil, err
	}

	m.studentsViewed, err = meter.Int64Counter(
		"academy.students.viewed",
		metric.WithDescription("Total number of single student lookups"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("metrics collectors initialized successfully")
	return m, nil
}

func (m *Metrics) RecordStudentCreated(ctx context.Context) {
	if m != nil && m.studentsCreated != nil {
		m.studentsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordCourseCreated(ctx context.Context) {
	if m != nil && m.coursesCreated != nil {
		m.coursesCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentSearch(ctx context.Context) {
	if m != nil && m.studentSearches != nil {
		m.studentSearches.Add(ctx, 1)
	}
}

func (m *Metrics) RecordStudentViewed(ctx context.Context) {
	if m != nil && m.studentsViewed != nil {
		m.studentsViewed.Add(ctx, 1)
	}
}

// DB returns the database instruments; safe on a nil receiver.
func (m *Metrics) DB() *DatabaseMetrics {
	if m == nil {
		return nil
	}
	return m.Database
}

// DependencyHealth returns the readiness instruments; safe on a nil receiver.
func (m *Metrics) DependencyHealth() *HealthMetrics {
	if m == nil {
		return nil
	}
	return m.Health
}

// NewMock creates a no-op Metrics instance for testing
func NewMock() *Metrics {
	return &Metrics{Database: &DatabaseMetrics{}}
}
