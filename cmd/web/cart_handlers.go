package main

import (
	"errors"
	"net/http"

	"github.com/nadav5199/persofy/internal/services/store"
)

func (app *Application) cartAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.Http.BadRequest(w, r, "invalid form submission")
		return
	}
	movieID := r.PostForm.Get("movie_id")
	session := app.sessionFromContext(r)

	cart, err := app.services.Store.AddToCart(r.Context(), session.Name, session.Cart, movieID)
	if err != nil {
		if errors.Is(err, store.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "Movie not found")
			return
		}
		app.Http.ServerError(w, r, err)
		return
	}

	session.Cart = cart
	if err := app.sessionStore.Save(r.Context(), session); err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (app *Application) cartRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.Http.BadRequest(w, r, "invalid form submission")
		return
	}
	movieID := r.PostForm.Get("movie_id")
	session := app.sessionFromContext(r)

	session.Cart = app.services.Store.RemoveFromCart(session.Cart, movieID)
	if err := app.sessionStore.Save(r.Context(), session); err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
