package main

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"testing"

	"bakery-be/internal/config"
	"bakery-be/internal/logger"
	"bakery-be/internal/metrics"
	"bakery-be/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Driver for Testing ---
type mockDriver struct{}

func (m *mockDriver) Open(name string) (driver.Conn, error)         { return &mockConn{}, nil }
func (c *mockConn) Prepare(query string) (driver.Stmt, error)       { return &mockStmt{}, nil }
func (c *mockConn) Close() error                                    { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                       { return nil, nil }
func (s *mockStmt) Close() error                                    { return nil }
func (s *mockStmt) NumInput() int                                   { return 0 }
func (s *mockStmt) Exec(args []driver.Value) (driver.Result, error) { return nil, nil }
func (s *mockStmt) Query(args []driver.Value) (driver.Rows, error)  { return nil, nil }

type mockConn struct{}
type mockStmt struct{}

func init() {
	sql.Register("mock_driver_main", &mockDriver{})
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		AppPort:         "8080",
		AppEnv:          "test",
		JWTSecret:       "testsecret",
		CORSOrigin:      "http://localhost:3000",
		CartStorageDir:  t.TempDir(),
		CartCacheSize:   8,
		RealtimeChannel: "bakery_changes",
	}
}

func TestNewServer(t *testing.T) {
	db, err := sql.Open("mock_driver_main", "")
	require.NoError(t, err)

	srv, err := newServer(testConfig(t), db)
	require.NoError(t, err)
	defer srv.close()

	t.Run("Health check", func(t *testing.T) {
		rr := httptest.NewRecorder()
		srv.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "ok")
		assert.NotEmpty(t, rr.Header().Get(logger.HeaderRequestID))
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rr := httptest.NewRecorder()
		srv.handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Invalid token rejected before routing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rr := httptest.NewRecorder()
		srv.handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Admin routes need a session", func(t *testing.T) {
		rr := httptest.NewRecorder()
		srv.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/metrics", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestNewServer_BadCacheSize(t *testing.T) {
	db, err := sql.Open("mock_driver_main", "")
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.CartCacheSize = 0

	_, err = newServer(cfg, db)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(cfg *config.Config) *sql.DB {
		db, _ := sql.Open("mock_driver_main", "")
		return db
	}

	var realtimeStarted bool
	origRealtime := startRealtimeFunc
	defer func() { startRealtimeFunc = origRealtime }()
	startRealtimeFunc = func(ctx context.Context, cfg *config.Config, hub *realtime.Hub, reg *metrics.Registry) {
		realtimeStarted = hub != nil && reg != nil
	}

	var gotAddr string
	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	startServerFunc = func(addr string, handler http.Handler) error {
		gotAddr = addr
		return nil
	}

	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("DB_NAME", "db")
	t.Setenv("CART_STORAGE_DIR", t.TempDir())

	assert.NoError(t, run())
	assert.Equal(t, ":9090", gotAddr)
	assert.True(t, realtimeStarted)
}
