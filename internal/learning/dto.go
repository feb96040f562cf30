// AngelaMos | 2026
// dto.go

package learning

import (
	"time"
)

// EnrollRequest enrolls StudentID, which defaults to the caller.
type EnrollRequest struct {
	StudentID int64 `json:"student_id,omitempty" validate:"gt=0"`
	CourseID  int64 `json:"-"                    validate:"gt=0"`
}

type ReviewRequest struct {
	StudentID int64  `json:"-"       validate:"gt=0"`
	CourseID  int64  `json:"-"       validate:"gt=0"`
	Content   string `json:"content" validate:"required"`
	Rating    int    `json:"rating"  validate:"rating"`
}

type ContentRequest struct {
	CourseID    int64   `json:"-"                      validate:"gt=0"`
	Title       string  `json:"title"                  validate:"required,max=255"`
	Description string  `json:"description"            validate:"required"`
	ContentType string  `json:"content_type"           validate:"oneof=audio text"`
	FilePath    *string `json:"file_path,omitempty"`
	TextContent *string `json:"text_content,omitempty"`
}

type EnrollmentResponse struct {
	ID             int64      `json:"id"`
	StudentID      int64      `json:"student_id"`
	CourseID       int64      `json:"course_id"`
	EnrolledAt     time.Time  `json:"enrolled_at"`
	Completed      bool       `json:"completed"`
	CompletionDate *time.Time `json:"completion_date"`
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	CourseID  int64     `json:"course_id"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type ContentResponse struct {
	ID          int64     `json:"id"`
	CourseID    int64     `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ContentType string    `json:"content_type"`
	FilePath    *string   `json:"file_path,omitempty"`
	TextContent *string   `json:"text_content,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToEnrollmentResponse(e *Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:             e.ID,
		StudentID:      e.StudentID,
		CourseID:       e.CourseID,
		EnrolledAt:     e.EnrolledAt,
		Completed:      e.Completed,
		CompletionDate: e.CompletionDate,
	}
}

func ToReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		StudentID: r.StudentID,
		CourseID:  r.CourseID,
		Content:   r.Content,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
	}
}

func ToContentResponse(c *Content) ContentResponse {
	return ContentResponse{
		ID:          c.ID,
		CourseID:    c.CourseID,
		Title:       c.Title,
		Description: c.Description,
		ContentType: c.ContentType,
		FilePath:    c.FilePath,
		TextContent: c.TextContent,
		CreatedAt:   c.CreatedAt,
	}
}

func mapSlice[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}
