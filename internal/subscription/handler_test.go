// AngelaMos | 2026
// handler_test.go

package subscription

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/course-marketplace/internal/core"
	"github.com/carterperez-dev/course-marketplace/internal/middleware"
)

func serveAs(t *testing.T, svc *Service, a core.Actor, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	auth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
				UserID: a.UserID,
				Role:   a.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, auth)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHandlerSubscribeFlow(t *testing.T) {
	svc, _ := newTestService()

	rec := serveAs(t, svc, student, http.MethodPost, "/subscriptions", `{"tutor_id":10}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data SubscriptionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Data.Active)
	assert.Nil(t, created.Data.EndDate)

	rec = serveAs(t, svc, tutor, http.MethodGet, "/subscriptions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"student_id":20`)

	rec = serveAs(t, svc, tutor, http.MethodPost, "/subscriptions/1/end", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"active":false`)
}

func TestHandlerSubscribeErrors(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name   string
		actor  core.Actor
		method string
		path   string
		body   string
		want   int
	}{
		{"malformed body", student, http.MethodPost, "/subscriptions", `{`, http.StatusBadRequest},
		{"missing tutor", student, http.MethodPost, "/subscriptions", `{}`, http.StatusBadRequest},
		{"tutor is a student", student, http.MethodPost, "/subscriptions", `{"tutor_id":21}`, http.StatusBadRequest},
		{"unknown tutor", student, http.MethodPost, "/subscriptions", `{"tutor_id":999}`, http.StatusNotFound},
		{"bad id", student, http.MethodPost, "/subscriptions/x/end", "", http.StatusBadRequest},
		{"unknown subscription", student, http.MethodPost, "/subscriptions/7/end", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveAs(t, svc, tt.actor, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}
