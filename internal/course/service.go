package course

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"academy-service/internal/apperrors"
	"academy-service/internal/db"
	"academy-service/internal/metrics"
	"academy-service/internal/store"
	"academy-service/internal/student"

	"github.com/uptrace/bun"
)

type Service interface {
	CreateCourse(ctx context.Context, studentID int64, req CreateCourseRequest) (*CourseResponse, error)
	GetCoursesByStudent(ctx context.Context, studentID int64) ([]CourseResponse, error)
}

type service struct {
	db       bun.IDB
	repo     Repository
	students student.Repository
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewService(db bun.IDB, repo Repository, students student.Repository, m *metrics.Metrics, logger *slog.Logger) Service {
	return &service{
		db:       db,
		repo:     repo,
		students: students,
		metrics:  m,
		logger:   logger,
	}
}

// CreateCourse attaches a new course to an existing student. Nothing is
// written when the student does not exist.
func (s *service) CreateCourse(ctx context.Context, studentID int64, req CreateCourseRequest) (*CourseResponse, error) {
	var course *Course

	err := store.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		owner, err := s.students.WithTx(tx).FindByID(ctx, studentID)
		if err != nil {
			return err
		}

		course = ToEntity(req, owner)
		return s.repo.WithTx(tx).Create(ctx, course)
	})
	if err != nil {
		// The foreign key catches a student deleted between lookup and insert.
		if errors.Is(err, store.ErrNotFound) || db.IsForeignKeyViolation(err) {
			return nil, apperrors.NotFound("student", studentID)
		}
		return nil, fmt.Errorf("create course for student %d: %w", studentID, err)
	}

	s.metrics.RecordCourseCreated(ctx)
	s.logger.InfoContext(ctx, "course created", "course_id", course.ID, "student_id", studentID)

	resp := ToResponse(*course)
	return &resp, nil
}

// GetCoursesByStudent lists the student's courses by id. An unknown student
// simply has no courses.
func (s *service) GetCoursesByStudent(ctx context.Context, studentID int64) ([]CourseResponse, error) {
	var courses []Course

	err := store.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		courses, err = s.repo.WithTx(tx).FindByStudentID(ctx, studentID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list courses for student %d: %w", studentID, err)
	}

	return ToResponses(courses), nil
}
