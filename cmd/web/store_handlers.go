package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nadav5199/persofy/internal/domain/filters"
	"github.com/nadav5199/persofy/internal/services/catalog"
)

func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	catalogFilters := filters.Catalog{
		Search: query.Get("search"),
		Genre:  query.Get("genre"),
		Sort:   query.Get("sort"),
	}

	movies, err := app.services.Catalog.List(r.Context(), catalogFilters)
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	genres, err := app.services.Catalog.Tags(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Movies = movies
	data.Genres = genres
	data.Sort = catalogFilters.Sort
	data.Search = catalogFilters.Search
	data.Genre = catalogFilters.Genre
	app.Http.Render(w, r, http.StatusOK, "store.html", data)
}

func (app *Application) movieDetail(w http.ResponseWriter, r *http.Request) {
	movie, err := app.services.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "Movie not found")
			return
		}
		app.Http.ServerError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Movie = movie
	app.Http.Render(w, r, http.StatusOK, "movie.html", data)
}

func (app *Application) paymentForm(w http.ResponseWriter, r *http.Request) {
	app.Http.Render(w, r, http.StatusOK, "payment.html", app.newTemplateData(r))
}

// completePayment finalizes the mock purchase: cart contents move to the
// user's library and become eligible for review, then the cart is emptied.
func (app *Application) completePayment(w http.ResponseWriter, r *http.Request) {
	session := app.sessionFromContext(r)

	purchased, err := app.services.Store.Checkout(r.Context(), session.UserID, session.Cart)
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}

	session.PendingReview = purchased
	session.Cart = nil
	if err := app.sessionStore.Save(r.Context(), session); err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/review", http.StatusFound)
}
