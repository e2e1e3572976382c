package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := AdminOnly(next)

	t.Run("admin passes through", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/policy", nil)
		r = r.WithContext(WithIdentity(r.Context(), Identity{UserID: "user-1", Role: "admin"}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("member is forbidden", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/policy", nil)
		r = r.WithContext(WithIdentity(r.Context(), Identity{UserID: "user-1", Role: "member"}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/policy", nil)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
