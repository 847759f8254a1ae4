package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"next-blog/config"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, userID uint, role string, expiresAt time.Time) string {
	t.Helper()

	claims := &Claims{
		UserID:   userID,
		Username: "tester",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuth(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		role, _ := c.Get("user_role")
		c.JSON(200, gin.H{"user_id": userID, "role": role})
	})
	return r
}

// TestJWTAuth 认证中间件：cookie和header两种携带方式
func TestJWTAuth(t *testing.T) {
	config.Conf = &config.AppConfig{
		JWT: config.JWTConfig{Secret: testSecret},
	}
	r := setupAuthRouter()

	tests := []struct {
		name       string
		setup      func(req *http.Request)
		wantStatus int
	}{
		{
			name: "Valid token in cookie",
			setup: func(req *http.Request) {
				token := signTestToken(t, 1, "admin", time.Now().Add(time.Hour))
				req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Valid token in Authorization header",
			setup: func(req *http.Request) {
				token := signTestToken(t, 2, "user", time.Now().Add(time.Hour))
				req.Header.Set("Authorization", "Bearer "+token)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "No token",
			setup:      func(req *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Expired token",
			setup: func(req *http.Request) {
				token := signTestToken(t, 1, "admin", time.Now().Add(-time.Hour))
				req.Header.Set("Authorization", "Bearer "+token)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Malformed Authorization header",
			setup: func(req *http.Request) {
				req.Header.Set("Authorization", "not-a-bearer-token")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "Token signed with wrong secret",
			setup: func(req *http.Request) {
				claims := &Claims{UserID: 1, Role: "admin", RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}}
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
				signed, _ := token.SignedString([]byte("wrong-secret"))
				req.Header.Set("Authorization", "Bearer "+signed)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tt.setup(req)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
