package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sakif/bible-study/internal/auth"
	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository/sqlite"
	"github.com/sakif/bible-study/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T, db *sqlite.DB) *service.AuthService {
	t.Helper()
	tokens, err := auth.NewTokenService("handler-test-secret-0123456789abcdef", time.Hour)
	require.NoError(t, err)
	return service.NewAuthService(db.Users(), tokens, auth.NewPasswordServiceForTest(4), testLogger())
}

// newRequest builds a JSON request. A non-nil user is placed in the
// context the way RequireAuth would; params become chi URL params.
func newRequest(t *testing.T, method, target, body string, user *model.User, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	ctx := req.Context()
	if user != nil {
		ctx = auth.WithUser(ctx, user)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}
