package catalog

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymbooking/internal/middleware"
	"gymbooking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, f := newTestService(t)
	tokens := jwt.New("catalog-secret", time.Hour)
	guestToken, err := tokens.GenerateToken(f.Guest.ID, "guest")
	require.NoError(t, err)
	adminToken, err := tokens.GenerateToken(f.Admin.ID, "admin")
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api/v1", middleware.JWTAuth(tokens))
	h := NewHandler(svc)
	h.RegisterRoutes(api)
	h.RegisterAdminRoutes(api.Group("/admin", middleware.AdminOnly()))

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodGet, "/api/v1/stores", guestToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), f.Store.ID.String())

	w = do(http.MethodGet, "/api/v1/services", guestToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Personal training")

	w = do(http.MethodGet, "/api/v1/staff?store_id="+f.Store.ID.String(), guestToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Aoi")

	w = do(http.MethodGet, "/api/v1/staff?store_id=nope", guestToken, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(http.MethodPost, "/api/v1/admin/stores", guestToken, `{"name":"Ebisu","slug":"ebisu"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(http.MethodPost, "/api/v1/admin/stores", adminToken, `{"name":"Ebisu","slug":"ebisu"}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(http.MethodPost, "/api/v1/admin/stores", adminToken, `{"name":"Ebisu","slug":"ebisu"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(http.MethodPost, "/api/v1/admin/staff", adminToken, `{"store_id":"`+f.Store.ID.String()+`","name":"Ren"}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(http.MethodPatch, "/api/v1/admin/staff/"+f.Staff.ID.String()+"/active", adminToken, `{"active":false}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"is_active":false`)

	w = do(http.MethodPatch, "/api/v1/admin/staff/"+f.Staff.ID.String()+"/active", adminToken, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(http.MethodPost, "/api/v1/admin/services", adminToken, `{"name":"Seitai","category":"seitai","duration_minutes":30}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(http.MethodPost, "/api/v1/admin/guests", adminToken, `{"name":"Mika","email":"mika@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "correct-horse")

	w = do(http.MethodGet, "/api/v1/admin/guests", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mika@example.com")

	w = do(http.MethodDelete, "/api/v1/admin/staff/not-a-uuid", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
