package student

import (
	"academy-service/internal/audit"

	"github.com/uptrace/bun"
)

type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Name  string `bun:"name,type:varchar(100),notnull"`
	Email string `bun:"email,type:varchar(150),notnull,unique"`
	Age   int    `bun:"age,notnull"`
	audit.Fields
}

type CreateStudentRequest struct {
	Name  string `json:"name" validate:"notblank,max=100"`
	Email string `json:"email" validate:"notblank,email,max=150"`
	Age   int    `json:"age" validate:"gte=18"`
}

type StudentResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

type SortField struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// SearchRequest is the body of POST /api/v1/students/search. A zero Size
// means DefaultSearchSize.
type SearchRequest struct {
	Page    int                    `json:"page" validate:"gte=0"`
	Size    int                    `json:"size" validate:"gte=0,lte=100"`
	Search  string                 `json:"search"`
	Filters map[string]interface{} `json:"filters"`
	Sorting []SortField            `json:"sorting"`
}
