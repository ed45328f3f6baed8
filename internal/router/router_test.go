package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"qtirender/internal/domain"
	"qtirender/internal/handler"
	"qtirender/internal/port"
	"qtirender/internal/router"
	"qtirender/internal/service"
	"qtirender/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(authSvc *mocks.MockAuthService, itemSvc *mocks.MockItemService) *gin.Engine {
	respSvc := new(mocks.MockResponseService)
	return router.Setup(authSvc, router.Handlers{
		Render:   handler.NewRenderHandler(new(mocks.MockFragmentRenderer), 0),
		Item:     handler.NewItemHandler(itemSvc, 0),
		Response: handler.NewResponseHandler(itemSvc, respSvc),
		Health:   handler.NewHealthHandler(map[string]port.HealthChecker{}),
	}, []string{"https://app.example.com"})
}

func TestRouter_HealthIsPublic(t *testing.T) {
	r := newEngine(new(mocks.MockAuthService), new(mocks.MockItemService))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_ItemsRequireToken(t *testing.T) {
	r := newEngine(new(mocks.MockAuthService), new(mocks.MockItemService))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/items", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_LearnerCannotCreateItems(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	itemSvc := new(mocks.MockItemService)
	authSvc.On("ValidateToken", "learner-token").
		Return(&service.Claims{UserID: uuid.New(), Role: domain.RoleLearner}, nil)

	r := newEngine(authSvc, itemSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(`{"title":"x","source_html":"<p>x</p>"}`))
	req.Header.Set("Authorization", "Bearer learner-token")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	itemSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRouter_AuthorListsItems(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	itemSvc := new(mocks.MockItemService)
	authSvc.On("ValidateToken", "author-token").
		Return(&service.Claims{UserID: uuid.New(), Role: domain.RoleAuthor}, nil)
	itemSvc.On("List", mock.Anything, 0, 20).Return([]domain.Item{}, 0, nil)

	r := newEngine(authSvc, itemSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/items", http.NoBody)
	req.Header.Set("Authorization", "Bearer author-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_LearnerReadsSnapshotContent(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	itemSvc := new(mocks.MockItemService)
	id := uuid.New()
	authSvc.On("ValidateToken", "learner-token").
		Return(&service.Claims{UserID: uuid.New(), Role: domain.RoleLearner}, nil)
	itemSvc.On("SnapshotContent", mock.Anything, id).Return([]byte("<p>x</p>"), nil)

	r := newEngine(authSvc, itemSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/items/"+id.String()+"/snapshot/content", http.NoBody)
	req.Header.Set("Authorization", "Bearer learner-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<p>x</p>", w.Body.String())
}
