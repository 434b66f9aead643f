package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Syeddabbas07/chest-ray/internal/domain/access"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestRequireOperation(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	h := RequireOperation(access.AdminDashboard)(next)

	tests := []struct {
		name     string
		session  *service.Session
		status   int
		location string
		called   bool
	}{
		{name: "anonymous", status: http.StatusFound, location: "/login"},
		{name: "wrong role", session: &service.Session{AccountID: 1, Role: entity.RoleExpert}, status: http.StatusForbidden},
		{name: "allowed", session: &service.Session{AccountID: 2, Role: entity.RoleAdmin}, status: http.StatusOK, called: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
			if tt.session != nil {
				req = req.WithContext(WithSession(req.Context(), tt.session))
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			assert.Equal(t, tt.called, called)
		})
	}
}

func TestGetSession_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetSession(req.Context())
	assert.False(t, ok)
}
