package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
	seen   string
}

func (s *stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	s.seen = token
	if s.claims == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return s.claims, nil
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/scores/:id", append(handlers, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})...)
	return router
}

func serve(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/scores/sc-1", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTRejectsMissingOrMalformedHeader(t *testing.T) {
	router := newRouter(JWT(&stubValidator{claims: &models.JWTClaims{Role: models.RoleAdmin}}))

	assert.Equal(t, http.StatusUnauthorized, serve(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, "Bearer   ").Code)
}

func TestJWTRejectsInvalidToken(t *testing.T) {
	validator := &stubValidator{}
	router := newRouter(JWT(validator))

	w := serve(router, "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "forged", validator.seen)
}

func TestRBACAllowsConfiguredRoles(t *testing.T) {
	teacher := &stubValidator{claims: &models.JWTClaims{UserID: "u-1", Role: models.RoleTeacher}}
	router := newRouter(JWT(teacher), RequireRoles(models.RoleAdmin, models.RoleSuperAdmin, models.RoleTeacher))
	assert.Equal(t, http.StatusNoContent, serve(router, "Bearer ok").Code)

	router = newRouter(JWT(teacher), RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
	assert.Equal(t, http.StatusForbidden, serve(router, "Bearer ok").Code)
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	router := newRouter(RequireRoles(models.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, serve(router, "Bearer ok").Code)
}

func TestRequireRolesIgnoresResourceOwnership(t *testing.T) {
	owner := &stubValidator{claims: &models.JWTClaims{UserID: "sc-1", Role: models.RoleTeacher}}
	router := newRouter(JWT(owner), RequireRoles(models.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, serve(router, "Bearer ok").Code)
}

type recordedRequest struct {
	method, route string
	status        int
}

type recordingObserver struct {
	requests []recordedRequest
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.requests = append(r.requests, recordedRequest{method: method, route: path, status: status})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	observer := &recordingObserver{}
	router := newRouter()
	router.Use(Metrics(observer))
	router.POST("/api/scores/:id", func(c *gin.Context) { c.Status(http.StatusCreated) })

	for _, target := range []string{"/api/scores/sc-1", "/api/scores/sc-2", "/random/path"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, target, nil))
	}

	require.Len(t, observer.requests, 3)
	assert.Equal(t, recordedRequest{http.MethodPost, "/api/scores/:id", http.StatusCreated}, observer.requests[0])
	assert.Equal(t, "/api/scores/:id", observer.requests[1].route)
	assert.Equal(t, recordedRequest{http.MethodPost, unmatchedRoute, http.StatusNotFound}, observer.requests[2])
}

func TestAuditLogsSuccessfulWrites(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	validator := &stubValidator{claims: &models.JWTClaims{UserID: "u-9", Role: models.RoleAdmin}}
	router := newRouter(JWT(validator), Audit(zap.New(core), "delete", "score"))

	require.Equal(t, http.StatusNoContent, serve(router, "Bearer ok").Code)
	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "u-9", fields["user_id"])
	assert.Equal(t, "sc-1", fields["resource_id"])
	assert.Equal(t, "score", fields["resource"])
}
