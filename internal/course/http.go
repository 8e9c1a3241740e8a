package course

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"academy-service/internal/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
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

// RegisterRoutes mounts the course endpoints under the owning student. The
// parameter is named id to share the student route's wildcard.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/api/v1/students/{id}/courses", h.CreateCourse)
	router.Get("/api/v1/students/{id}/courses", h.GetCoursesByStudent)
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid student id")
		return
	}

	var req CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, httputil.ValidationMessage(err))
		return
	}

	h.logger.InfoContext(r.Context(), "creating course", "student_id", studentID, "title", req.Title)
	course, err := h.service.CreateCourse(r.Context(), studentID, req)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, course)
}

func (h *Handler) GetCoursesByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid student id")
		return
	}

	courses, err := h.service.GetCoursesByStudent(r.Context(), studentID)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, courses)
}
