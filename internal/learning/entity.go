// AngelaMos | 2026
// entity.go

package learning

import (
	"time"

	"github.com/carterperez-dev/course-marketplace/internal/core"
)

const (
	ContentTypeAudio = "audio"
	ContentTypeText  = "text"
)

type Enrollment struct {
	ID             int64      `db:"id"`
	StudentID      int64      `db:"student_id" validate:"gt=0"`
	CourseID       int64      `db:"course_id"  validate:"gt=0"`
	EnrolledAt     time.Time  `db:"enrolled_at"`
	Completed      bool       `db:"completed"`
	CompletionDate *time.Time `db:"completion_date"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (e *Enrollment) Validate() error {
	verr := core.CollectValidation(e)

	if e.Completed && e.CompletionDate == nil {
		verr.Add("completion_date", "is required once completed")
	}
	if !e.Completed && e.CompletionDate != nil {
		verr.Add("completion_date", "must be empty until completed")
	}

	return verr.OrNil()
}

type Review struct {
	ID        int64     `db:"id"`
	Content   string    `db:"content"    validate:"required"`
	Rating    int       `db:"rating"     validate:"rating"`
	CourseID  int64     `db:"course_id"  validate:"gt=0"`
	StudentID int64     `db:"student_id" validate:"gt=0"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *Review) Validate() error {
	return core.ValidateStruct(r)
}

// Content is one lesson item of a course. Audio items point at a file,
// text items carry their body inline; never both.
type Content struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"        validate:"required,max=255"`
	Description string    `db:"description"  validate:"required"`
	ContentType string    `db:"content_type" validate:"oneof=audio text"`
	FilePath    *string   `db:"file_path"`
	TextContent *string   `db:"text_content"`
	CourseID    int64     `db:"course_id"    validate:"gt=0"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (c *Content) Validate() error {
	verr := core.CollectValidation(c)

	hasFile := c.FilePath != nil && *c.FilePath != ""
	hasText := c.TextContent != nil && *c.TextContent != ""

	switch c.ContentType {
	case ContentTypeAudio:
		if !hasFile {
			verr.Add("file_path", "is required for audio content")
		}
		if hasText {
			verr.Add("text_content", "must be empty for audio content")
		}
	case ContentTypeText:
		if !hasText {
			verr.Add("text_content", "is required for text content")
		}
		if hasFile {
			verr.Add("file_path", "must be empty for text content")
		}
	}

	return verr.OrNil()
}
