package slot

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymbooking/internal/middleware"
	"gymbooking/internal/pkg/jwt"
	"gymbooking/internal/repository/repotest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *repotest.Fixture, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, f, _ := newTestService(t)
	tokens := jwt.New("handler-secret", time.Hour)
	adminToken, err := tokens.GenerateToken(f.Admin.ID, "admin")
	require.NoError(t, err)
	guestToken, err := tokens.GenerateToken(f.Guest.ID, "guest")
	require.NoError(t, err)

	r := gin.New()
	admin := r.Group("/api/v1/admin", middleware.JWTAuth(tokens), middleware.AdminOnly())
	NewHandler(svc).RegisterAdminRoutes(admin)
	return r, f, adminToken, guestToken
}

func do(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateSlot(t *testing.T) {
	r, f, adminToken, guestToken := newTestRouter(t)
	body := gin.H{
		"store_id":   f.Store.ID,
		"staff_id":   f.Staff.ID,
		"service_id": f.Service.ID,
		"start_time": "2024-06-01T10:00:00Z",
	}

	w := do(r, http.MethodPost, "/api/v1/admin/slots", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"end_time":"2024-06-01T11:00:00Z"`)

	w = do(r, http.MethodPost, "/api/v1/admin/slots", adminToken, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "SLOT_CONFLICT")

	w = do(r, http.MethodPost, "/api/v1/admin/slots", guestToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_PublishAndDelete(t *testing.T) {
	r, f, adminToken, _ := newTestRouter(t)
	slot := f.AddSlot(t, time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC), false)
	base := "/api/v1/admin/slots/" + slot.ID.String()

	w := do(r, http.MethodPatch, base+"/publish", adminToken, gin.H{"published": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"is_published":true`)

	w = do(r, http.MethodPatch, base+"/publish", adminToken, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, base, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, base, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/v1/admin/slots/not-a-uuid", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")
}
