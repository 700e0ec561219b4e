package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"relief_map/internal/model"
	"relief_map/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubAuthService resolves a fixed token to a fixed user.
type stubAuthService struct {
	token string
	user  *model.User
}

func (s *stubAuthService) Register(context.Context, model.RegisterRequest) (*model.User, string, error) {
	return nil, "", nil
}

func (s *stubAuthService) Login(context.Context, string, string) (*model.User, string, error) {
	return nil, "", nil
}

func (s *stubAuthService) VerifyToken(token string) (string, error) {
	if token != s.token {
		return "", service.ErrInvalidToken
	}
	return s.user.ID, nil
}

func (s *stubAuthService) GetUserByID(_ context.Context, id string) (*model.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, service.ErrUserNotFound
	}
	return s.user, nil
}

func setupRouter(authSvc service.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(authSvc)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		user := AuthUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "role": user.Role})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := setupRouter(&stubAuthService{})

	w := doRequest(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := setupRouter(&stubAuthService{})

	w := doRequest(router, "Token abc")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupRouter(&stubAuthService{token: "good"})

	w := doRequest(router, "Bearer bad")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ResolvesUser(t *testing.T) {
	svc := &stubAuthService{token: "good", user: &model.User{ID: "user-1", Role: model.RoleUser}}
	router := setupRouter(svc)

	w := doRequest(router, "Bearer good")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestRoleMiddleware_AllowsMatchingRole(t *testing.T) {
	svc := &stubAuthService{token: "good", user: &model.User{ID: "admin-1", Role: model.RoleAdmin}}
	router := setupRouter(svc, AdminMiddleware())

	w := doRequest(router, "Bearer good")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddleware_RejectsOtherRole(t *testing.T) {
	svc := &stubAuthService{token: "good", user: &model.User{ID: "user-1", Role: model.RoleUser}}
	router := setupRouter(svc, AdminMiddleware())

	w := doRequest(router, "Bearer good")

	assert.Equal(t, http.StatusForbidden, w.Code)
}
