package student

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"academy-service/internal/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const (
	defaultPage     = 0
	defaultPageSize = 5
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(service Service, validate *validator.Validate, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validate,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/api/v1/students", h.CreateStudent)
	router.Get("/api/v1/students", h.GetAllStudents)
	router.Get("/api/v1/students/paged", h.GetStudentsPaged)
	router.Post("/api/v1/students/search", h.SearchStudents)
	router.Get("/api/v1/students/min-age", h.GetStudentsWithMinAge)
	router.Get("/api/v1/students/by-email", h.GetStudentByEmail)
	router.Get("/api/v1/students/{id}", h.GetStudent)
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, httputil.ValidationMessage(err))
		return
	}

	h.logger.InfoContext(r.Context(), "creating student", "email", req.Email)
	student, err := h.service.Create(r.Context(), req)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, student)
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid student id")
		return
	}

	student, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, student)
}

func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.GetAll(r.Context())
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, students)
}

func (h *Handler) GetStudentsPaged(w http.ResponseWriter, r *http.Request) {
	page, ok := h.intParam(w, r, "page", defaultPage)
	if !ok {
		return
	}
	size, ok := h.intParam(w, r, "size", defaultPageSize)
	if !ok {
		return
	}

	result, err := h.service.GetAllPaged(r.Context(), page, size)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) SearchStudents(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	dec := json.NewDecoder(r.Body)
	// Filter values stay json.Number so large ids are not rounded.
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, httputil.ValidationMessage(err))
		return
	}

	h.logger.InfoContext(r.Context(), "searching students",
		"search", req.Search,
		"filters", len(req.Filters),
		"sorting", len(req.Sorting),
	)
	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) GetStudentsWithMinAge(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("age") == "" {
		httputil.RespondWithError(w, http.StatusBadRequest, "age parameter is required")
		return
	}
	age, ok := h.intParam(w, r, "age", 0)
	if !ok {
		return
	}

	students, err := h.service.GetWithMinAge(r.Context(), age)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, students)
}

func (h *Handler) GetStudentByEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		httputil.RespondWithError(w, http.StatusBadRequest, "email parameter is required")
		return
	}

	student, err := h.service.GetByEmail(r.Context(), email)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, student)
}

// intParam reads an integer query parameter, answering 400 when it is
// malformed.
func (h *Handler) intParam(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return v, true
}
