package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/organizer", JWTAuth(testSecret), RequireOrganizer(), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return r
}

func call(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/organizer", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := newProtectedRouter()

	organizer, err := NewAccessToken(testSecret, "E00001", RoleOrganizer, time.Hour)
	require.NoError(t, err)
	customer, err := NewAccessToken(testSecret, "U-1", "CUSTOMER", time.Hour)
	require.NoError(t, err)
	expired, err := NewAccessToken(testSecret, "E00001", RoleOrganizer, -time.Minute)
	require.NoError(t, err)
	wrongKey, err := NewAccessToken("other-secret", "E00001", RoleOrganizer, time.Hour)
	require.NoError(t, err)
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "E00001", "role": RoleOrganizer, "type": "refresh",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		code  int
	}{
		{"organizer allowed", organizer, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"other role", customer, http.StatusForbidden},
		{"expired", expired, http.StatusUnauthorized},
		{"wrong key", wrongKey, http.StatusUnauthorized},
		{"refresh token", refresh, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(r, tt.token)
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "E00001", w.Body.String())
			}
		})
	}
}

func TestJWTAuthRejectsMalformedHeader(t *testing.T) {
	r := newProtectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/organizer", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newProtectedRouter()

	w := call(r, "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/organizer", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}
