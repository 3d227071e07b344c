package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"randevio/utils"

	"github.com/gin-gonic/gin"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", JWTAuthBusinessMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("businessID"))
	})
	return router
}

func getWithToken(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthResolvesBusinessID(t *testing.T) {
	router := authRouter()

	token, err := utils.GenerateToken("biz-1", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := getWithToken(router, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "biz-1" {
		t.Fatalf("businessID = %q, want biz-1", w.Body.String())
	}
}

func TestJWTAuthRejectsBadTokens(t *testing.T) {
	router := authRouter()

	expired, err := utils.GenerateToken("biz-1", "admin", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"garbage token", "not-a-jwt"},
		{"expired token", expired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := getWithToken(router, tc.token); w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
		})
	}
}
