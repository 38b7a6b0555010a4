package main

import (
	"net/http"
)

func (app *Application) reviewForm(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFromContext(r)

	data := app.newTemplateData(r)
	if len(session.PendingReview) > 0 {
		movies, err := app.services.Catalog.GetByIDs(r.Context(), session.PendingReview)
		if err != nil {
			app.Http.ServerError(w, r, err)
			return
		}
		data.Movies = movies
	}
	app.Http.Render(w, r, http.StatusOK, "review.html", data)
}

func (app *Application) reviewPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.Http.BadRequest(w, r, "invalid form submission")
		return
	}
	session := app.sessionFromContext(r)

	scores := parseReviewScores(r.PostForm)
	if len(scores) > 0 {
		if err := app.services.Store.SubmitReviews(r.Context(), session.UserID, scores); err != nil {
			app.Http.ServerError(w, r, err)
			return
		}
	}

	session.PendingReview = nil
	if err := app.sessionStore.Save(r.Context(), session); err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
