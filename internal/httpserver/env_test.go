package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avidela/product-catalog/internal/middleware/session"
	"github.com/avidela/product-catalog/internal/models"
	"github.com/avidela/product-catalog/internal/repo"
	"github.com/avidela/product-catalog/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	A  *AuthHTTP
	P  *CatalogHTTP
	G  *session.Guard
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}, &models.Counter{}))

	secret := []byte("test-jwt-secret")
	store := repo.New(db)

	return &testEnv{
		T:  t,
		E:  echo.New(),
		A:  &AuthHTTP{Svc: &service.AuthService{Repo: store, JWTSecret: secret}},
		P:  &CatalogHTTP{Svc: &service.CatalogService{Repo: store}},
		G:  session.NewGuard(secret),
		DB: db,
	}
}

func (env *testEnv) doJSONRequest(method, path string, payload any) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)

	return rec, c
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	return he.Code
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
