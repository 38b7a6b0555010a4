package main

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nadav5199/persofy/internal/domain/models"
	"github.com/nadav5199/persofy/internal/sessions"
)

const sessionCookieName = "session_id"

func (app *Application) decodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return app.formDecoder.Decode(dst, r.PostForm)
}

func (app *Application) setSessionCookie(w http.ResponseWriter, session *sessions.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   int(session.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (app *Application) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// newTemplateData seeds the view-model with the signed-in identity and the
// live cart, so every page can show them.
func (app *Application) newTemplateData(r *http.Request) *templateData {
	data := &templateData{}
	if session := app.sessionFromContext(r); session != nil {
		data.UserName = session.Name
		data.UserIcon = session.Icon
		data.IsAdmin = session.Role == models.RoleAdmin
		data.Cart = session.Cart
	}
	return data
}

// parseReviewScores extracts the reviews[<movieId>]=<score> fields the
// review form posts. Malformed entries are dropped; gorilla/schema does not
// decode bracketed map keys, hence the manual parse.
func parseReviewScores(form url.Values) map[string]int {
	scores := make(map[string]int)
	for key, values := range form {
		if !strings.HasPrefix(key, "reviews[") || !strings.HasSuffix(key, "]") {
			continue
		}
		movieID := key[len("reviews[") : len(key)-1]
		if movieID == "" || len(values) == 0 {
			continue
		}
		score, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			continue
		}
		scores[movieID] = score
	}
	return scores
}
