package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/dto"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

type mockProducts struct{ mock.Mock }

func (m *mockProducts) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (models.Product, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *mockProducts) GetProduct(ctx context.Context, id uint) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *mockProducts) ListProducts(ctx context.Context, q dto.ListQuery) (dto.ProductListResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(dto.ProductListResponse), args.Error(1)
}

func (m *mockProducts) UpdateProduct(ctx context.Context, id uint, req dto.UpdateProductRequest) (models.Product, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *mockProducts) DeleteProduct(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockSettings struct{ mock.Mock }

func (m *mockSettings) ListSettings(ctx context.Context) ([]models.Setting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Setting), args.Error(1)
}

func (m *mockSettings) UpsertSetting(ctx context.Context, key string, value *string) (models.Setting, error) {
	args := m.Called(ctx, key, value)
	return args.Get(0).(models.Setting), args.Error(1)
}

type mockUploads struct{ mock.Mock }

func (m *mockUploads) Upload(ctx context.Context, files []string) ([]string, error) {
	args := m.Called(ctx, files)
	urls, _ := args.Get(0).([]string)
	return urls, args.Error(1)
}

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Login(ctx context.Context, email, password string) (models.Admin, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(models.Admin), args.Error(1)
}

type mockStorefront struct{ mock.Mock }

func (m *mockStorefront) Home(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockStorefront) ProductPage(ctx context.Context, id uint) (dto.ProductPageResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.ProductPageResponse), args.Error(1)
}

func (m *mockStorefront) Contact(ctx context.Context) (dto.ContactResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(dto.ContactResponse), args.Error(1)
}

// testServer wraps a gin engine with a session store and a shortcut login route.
type testServer struct {
	t       *testing.T
	engine  *gin.Engine
	api     *gin.RouterGroup
	cookies []*http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.POST("/test/login", func(c *gin.Context) {
		_ = middleware.SetAdmin(c, "admin@shop.test")
		c.Status(http.StatusNoContent)
	})
	return &testServer{t: t, engine: r, api: r.Group("/api")}
}

func (s *testServer) login() {
	w := s.do(http.MethodPost, "/test/login", nil)
	require.Equal(s.t, http.StatusNoContent, w.Code)
	s.cookies = w.Result().Cookies()
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range s.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}
