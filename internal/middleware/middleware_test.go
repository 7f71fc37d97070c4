package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LoggingMiddleware(), AuthMiddleware(testSecret))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id")})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := IssueToken(testSecret, 7, time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken(testSecret, 7, -time.Hour)
	require.NoError(t, err)
	wrongKey, err := IssueToken("other", 7, time.Hour)
	require.NoError(t, err)
	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	withUserID := func(v interface{}) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": v,
			"exp":     time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{name: "valid token", header: "Bearer " + valid, expectedStatus: http.StatusOK},
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, expectedStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, expectedStatus: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + wrongKey, expectedStatus: http.StatusUnauthorized},
		{name: "no user claim", header: "Bearer " + noUser, expectedStatus: http.StatusUnauthorized},
		{name: "fractional user id", header: "Bearer " + withUserID(1.5), expectedStatus: http.StatusUnauthorized},
		{name: "zero user id", header: "Bearer " + withUserID(0), expectedStatus: http.StatusUnauthorized},
		{name: "negative user id", header: "Bearer " + withUserID(-7), expectedStatus: http.StatusUnauthorized},
		{name: "user id out of range", header: "Bearer " + withUserID(1e19), expectedStatus: http.StatusUnauthorized},
		{name: "string user id", header: "Bearer " + withUserID("7"), expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter()
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"user_id":7}`, w.Body.String())
			}
		})
	}
}

func TestLoggingMiddlewareKeepsRequestID(t *testing.T) {
	router := setupAuthRouter()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestUserIDFromClaim(t *testing.T) {
	id, ok := userIDFromClaim(42)
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	id, ok = userIDFromClaim(maxUserID)
	assert.True(t, ok)
	assert.EqualValues(t, uint64(maxUserID), id)

	for _, v := range []float64{0, -1, 1.5, maxUserID + 2, 1e300} {
		_, ok := userIDFromClaim(v)
		assert.False(t, ok, "%v", v)
	}
}
