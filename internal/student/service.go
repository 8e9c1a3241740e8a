package student

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"academy-service/internal/apperrors"
	"academy-service/internal/db"
	"academy-service/internal/metrics"
	"academy-service/internal/store"

	"github.com/uptrace/bun"
)

type Service interface {
	Create(ctx context.Context, req CreateStudentRequest) (*StudentResponse, error)
	GetByID(ctx context.Context, id int64) (*StudentResponse, error)
	GetAll(ctx context.Context) ([]StudentResponse, error)
	GetAllPaged(ctx context.Context, page, size int) (store.Page[StudentResponse], error)
	Search(ctx context.Context, req SearchRequest) (store.Page[StudentResponse], error)
	GetWithMinAge(ctx context.Context, minAge int) ([]StudentResponse, error)
	GetByEmail(ctx context.Context, email string) (*StudentResponse, error)
}

type service struct {
	db      bun.IDB
	repo    Repository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(db bun.IDB, repo Repository, m *metrics.Metrics, logger *slog.Logger) Service {
	return &service{
		db:      db,
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

func (s *service) Create(ctx context.Context, req CreateStudentRequest) (*StudentResponse, error) {
	student := ToEntity(req)

	err := store.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		return s.repo.WithTx(tx).Create(ctx, student)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperrors.Conflict(fmt.Sprintf("student with email %s already exists", req.Email))
		}
		return nil, fmt.Errorf("create student: %w", err)
	}

	s.metrics.RecordStudentCreated(ctx)
	s.logger.InfoContext(ctx, "student created", "student_id", student.ID)

	resp := ToResponse(*student)
	return &resp, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*StudentResponse, error) {
	var student *Student

	err := store.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		student, err = s.repo.WithTx(tx).FindByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("student", id)
		}
		return nil, fmt.Errorf("get student %d: %w", id, err)
	}

	s.metrics.RecordStudentViewed(ctx)

	resp := ToResponse(*student)
	return &resp, nil
}

func (s *service) GetAll(ctx context.Context) ([]StudentResponse, error) {
	var students []Student

	err := store.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		students, err = s.repo.WithTx(tx).FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	return ToResponses(students), nil
}

func (s *service) GetAllPaged(ctx context.Context, page, size int) (store.Page[StudentResponse], error) {
	req := store.PageRequest{Page: page, Size: size}
	if err := req.Validate(); err != nil {
		return store.Page[StudentResponse]{}, apperrors.Validation(err.Error())
	}

	var result store.Page[Student]

	err := store.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		result, err = s.repo.WithTx(tx).FindPage(ctx, req)
		return err
	})
	if err != nil {
		return store.Page[StudentResponse]{}, fmt.Errorf("page students: %w", err)
	}

	return store.MapPage(result, ToResponse), nil
}

func (s *service) Search(ctx context.Context, req SearchRequest) (store.Page[StudentResponse], error) {
	pageReq := req.PageRequest()
	if err := pageReq.Validate(); err != nil {
		return store.Page[StudentResponse]{}, apperrors.Validation(err.Error())
	}

	criteria, err := NewCriteria(req)
	if err != nil {
		return store.Page[StudentResponse]{}, err
	}

	var result store.Page[Student]

	err = store.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		result, err = s.repo.WithTx(tx).Search(ctx, criteria, pageReq)
		return err
	})
	if err != nil {
		return store.Page[StudentResponse]{}, fmt.Errorf("search students: %w", err)
	}

	s.metrics.RecordStudentSearch(ctx)

	return store.MapPage(result, ToResponse), nil
}

func (s *service) GetWithMinAge(ctx context.Context, minAge int) ([]StudentResponse, error) {
	var students []Student

	err := store.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		students, err = s.repo.WithTx(tx).FindWithMinAge(ctx, minAge)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list students with min age %d: %w", minAge, err)
	}

	return ToResponses(students), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*StudentResponse, error) {
	var student *Student

	err := store.RunInTx(ctx, s.db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		student, err = s.repo.WithTx(tx).FindByEmail(ctx, email)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &apperrors.Error{
				Err:     apperrors.ErrNotFound,
				Message: fmt.Sprintf("student not found with email: %s", email),
			}
		}
		return nil, fmt.Errorf("get student by email: %w", err)
	}

	resp := ToResponse(*student)
	return &resp, nil
}
