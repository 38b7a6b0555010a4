package main

import (
	"errors"
	"net/http"

	"github.com/nadav5199/persofy/internal/services/auth"
	"github.com/nadav5199/persofy/internal/services/recommendations"
)

// forYou renders AI-picked movies. The page is best-effort: a failed
// completion request is a 500, not a degraded render, matching how the
// store treats any other backend failure.
func (app *Application) forYou(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFromContext(r)

	user, err := app.services.Auth.GetUser(r.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			app.Http.NotFound(w, r, "User not found")
			return
		}
		app.Http.ServerError(w, r, err)
		return
	}

	catalog, err := app.services.Catalog.Snapshot(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}

	movies, err := app.services.Recs.ForUser(r.Context(), recommendations.Preferences{
		FavoriteGenres: user.FavoriteGenres,
		Reviews:        user.Reviews,
	}, catalog)
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Movies = movies
	app.Http.Render(w, r, http.StatusOK, "foryou.html", data)
}
