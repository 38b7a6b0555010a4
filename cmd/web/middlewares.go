package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/nadav5199/persofy/internal/domain/models"
	"github.com/nadav5199/persofy/internal/sessions"

	"golang.org/x/time/rate"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			// Panic values are not always errors.
			if err := recover(); err != nil && err != http.ErrAbortHandler {
				app.Http.ServerError(w, r, fmt.Errorf("%v", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) RateLimiter(next http.Handler) http.Handler {
	const op = "middlewares.RateLimiter"
	log := app.log.With("op", op)
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	clients := make(map[string]*client)
	var mu sync.Mutex
	go func() {
		for {
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > 5*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
			time.Sleep(5 * time.Minute)
		}
	}()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.cfg.Limiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				app.Http.ServerError(w, r, err)
				return
			}
			mu.Lock()
			c, ok := clients[ip]
			if !ok {
				c = &client{limiter: rate.NewLimiter(rate.Limit(app.cfg.Limiter.Rps), app.cfg.Limiter.Burst)}
				clients[ip] = c
			}
			c.lastSeen = time.Now()
			mu.Unlock()
			if !c.limiter.Allow() {
				log.Warn("rate limit exceeded", "ip", ip)
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type CtxKey string

const CtxKeySession CtxKey = "session"

// Authenticate resolves the session cookie to server-held state. A missing,
// unknown or expired session leaves the request anonymous; nothing here
// rejects the request.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var session *sessions.Session

		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			session, err = app.sessionStore.Get(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, sessions.ErrNotFound) {
					app.Http.ServerError(w, r, err)
					return
				}
				session = nil
				app.clearSessionCookie(w)
			}
		}
		r = r.WithContext(context.WithValue(r.Context(), CtxKeySession, session))
		next.ServeHTTP(w, r)
	})
}

func (app *Application) sessionFromContext(r *http.Request) *sessions.Session {
	session, _ := r.Context().Value(CtxKeySession).(*sessions.Session)
	return session
}

func (app *Application) requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.sessionFromContext(r) == nil {
			http.Redirect(w, r, "/signin", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin checks the role carried by the session, not the display
// name: admin is an explicit role on the user record.
func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := app.sessionFromContext(r)
		if session == nil || session.Role != models.RoleAdmin {
			app.Http.Forbidden(w, r, "Access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}
