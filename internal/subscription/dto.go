// AngelaMos | 2026
// dto.go

package subscription

import (
	"time"
)

type SubscribeRequest struct {
	TutorID int64 `json:"tutor_id" validate:"required,gt=0"`
}

type SubscriptionResponse struct {
	ID        int64      `json:"id"`
	StudentID int64      `json:"student_id"`
	TutorID   int64      `json:"tutor_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Active    bool       `json:"active"`
}

func ToSubscriptionResponse(s *Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.ID,
		StudentID: s.StudentID,
		TutorID:   s.TutorID,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Active:    s.Active(),
	}
}

func ToSubscriptionResponseList(subs []Subscription) []SubscriptionResponse {
	out := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		out[i] = ToSubscriptionResponse(&subs[i])
	}
	return out
}
