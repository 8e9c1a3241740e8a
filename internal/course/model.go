package course

import (
	"academy-service/internal/audit"
	"academy-service/internal/db"
	"academy-service/internal/student"

	"github.com/uptrace/bun"
)

type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	ID        int64            `bun:"id,pk,autoincrement"`
	Title     string           `bun:"title,notnull"`
	Credits   int              `bun:"credits,notnull"`
	StudentID int64            `bun:"student_id,notnull"`
	Student   *student.Student `bun:"rel:belongs-to,join:student_id=id"`
	audit.Fields
}

// Courses are removed together with their student.
func (*Course) ForeignKeys() []string {
	return []string{`("student_id") REFERENCES "students" ("id") ON DELETE CASCADE`}
}

func (*Course) Indexes() []db.Index {
	return []db.Index{{Name: "courses_student_id_idx", Columns: []string{"student_id"}}}
}

type CreateCourseRequest struct {
	Title   string `json:"title" validate:"notblank,max=255"`
	Credits *int   `json:"credits" validate:"required,gte=0"`
}

type CourseResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Credits   int    `json:"credits"`
	StudentID int64  `json:"studentId"`
}

func ToEntity(req CreateCourseRequest, owner *student.Student) *Course {
	c := &Course{
		Title:     req.Title,
		StudentID: owner.ID,
		Student:   owner,
	}
	if req.Credits != nil {
		c.Credits = *req.Credits
	}
	return c
}

func ToResponse(c Course) CourseResponse {
	return CourseResponse{
		ID:        c.ID,
		Title:     c.Title,
		Credits:   c.Credits,
		StudentID: c.StudentID,
	}
}

func ToResponses(courses []Course) []CourseResponse {
	out := make([]CourseResponse, len(courses))
	for i, c := range courses {
		out[i] = ToResponse(c)
	}
	return out
}
