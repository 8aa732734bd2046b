// Package mockapitest runs the development backend on an httptest server.
package mockapitest

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/diplomas-2025/agro-market/internal/mockapi"
	"github.com/diplomas-2025/agro-market/internal/mockapi/db"
	"github.com/diplomas-2025/agro-market/internal/mockapi/events"
	"github.com/diplomas-2025/agro-market/internal/mockapi/seed"
)

const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "admin-pass"
)

type Server struct {
	*httptest.Server
	DB     *gorm.DB
	Events *events.Recorder
}

// BaseURL is the API root clients should be configured with.
func (s *Server) BaseURL() string { return s.URL + "/agro-market/" }

// New starts a backend over a private in-memory database seeded with the
// embedded catalogue and an admin account.
func New(t testing.TB) *Server {
	t.Helper()

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)

	rec := events.NewRecorder()
	ctx := context.Background()
	e, err := mockapi.New(ctx, mockapi.Options{
		DB:            gdb,
		AccessSecret:  []byte("test-access"),
		RefreshSecret: []byte("test-refresh"),
		Events:        rec,
	})
	require.NoError(t, err)

	cat, err := seed.Default()
	require.NoError(t, err)
	require.NoError(t, seed.Apply(ctx, gdb, cat, AdminEmail, AdminPassword))

	srv := httptest.NewServer(e)
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &Server{Server: srv, DB: gdb, Events: rec}
}
