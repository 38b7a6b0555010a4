package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nadav5199/persofy/internal/config"
	"github.com/nadav5199/persofy/internal/domain/models"
	"github.com/nadav5199/persofy/internal/sessions"

	"github.com/gorilla/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Sessions: config.Sessions{ShortTTL: time.Hour, LongTTL: 24 * time.Hour},
	}
	formDecoder := schema.NewDecoder()
	formDecoder.IgnoreUnknownKeys(true)
	store := sessions.NewMemoryStore()
	t.Cleanup(store.Close)
	return &Application{
		cfg:          cfg,
		log:          log,
		sessionStore: store,
		formDecoder:  formDecoder,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithSession(session *sessions.Session) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return r.WithContext(context.WithValue(r.Context(), CtxKeySession, session))
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid cookie resolves the session", func(t *testing.T) {
		app := newTestApplication(t)
		session := &sessions.Session{ID: "s1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
		require.NoError(t, app.sessionStore.Save(context.Background(), session))

		var got *sessions.Session
		handler := app.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = app.sessionFromContext(r)
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "s1"})
		handler.ServeHTTP(httptest.NewRecorder(), r)

		require.NotNil(t, got)
		assert.Equal(t, "u1", got.UserID)
	})

	t.Run("no cookie leaves the request anonymous", func(t *testing.T) {
		app := newTestApplication(t)
		var got *sessions.Session
		handler := app.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = app.sessionFromContext(r)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Nil(t, got)
	})

	t.Run("stale cookie is cleared and the request stays anonymous", func(t *testing.T) {
		app := newTestApplication(t)
		var got *sessions.Session
		handler := app.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = app.sessionFromContext(r)
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "expired"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Nil(t, got)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, sessionCookieName, cookies[0].Name)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestRecoverer(t *testing.T) {
	app := newTestApplication(t)

	t.Run("a panic with an error value becomes a 500", func(t *testing.T) {
		handler := app.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(assert.AnError)
		}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("a panic with a plain string still becomes a 500", func(t *testing.T) {
		handler := app.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRequireAuthenticated(t *testing.T) {
	app := newTestApplication(t)
	handler := app.requireAuthenticated(okHandler())

	t.Run("anonymous requests are redirected to sign-in", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestWithSession(nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/signin", w.Header().Get("Location"))
	})

	t.Run("signed-in requests pass through", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestWithSession(&sessions.Session{ID: "s1", Role: models.RoleUser}))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	app := newTestApplication(t)
	handler := app.requireAdmin(okHandler())

	t.Run("regular users are denied", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestWithSession(&sessions.Session{ID: "s1", Role: models.RoleUser}))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("anonymous requests are denied", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestWithSession(nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admins pass through", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestWithSession(&sessions.Session{ID: "s1", Role: models.RoleAdmin}))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
