package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)

	router.Get("/healthcheck", app.healthcheck)
	router.Handle("/icons/*", http.StripPrefix("/icons/", http.FileServer(http.Dir(app.cfg.UI.IconsDir))))

	router.Get("/", app.home)
	router.Get("/movie/{id}", app.movieDetail)
	router.Get("/signin", app.signinForm)
	router.Post("/signin", app.signinPost)
	router.Get("/signup", app.signupForm)
	router.Post("/signup", app.signupPost)

	router.Group(func(r chi.Router) {
		r.Use(app.requireAuthenticated)
		r.Post("/logout", app.logoutPost)
		r.Get("/choose-icon", app.chooseIconForm)
		r.Post("/choose-icon", app.chooseIconPost)
		r.Get("/genres", app.genresForm)
		r.Post("/genres", app.genresPost)
		r.Post("/cart/add", app.cartAdd)
		r.Post("/cart/remove", app.cartRemove)
		r.Get("/payment", app.paymentForm)
		r.Post("/complete-payment", app.completePayment)
		r.Get("/review", app.reviewForm)
		r.Post("/review", app.reviewPost)
		r.Get("/foryou", app.forYou)
	})

	router.Group(func(r chi.Router) {
		r.Use(app.requireAuthenticated)
		r.Use(app.requireAdmin)
		r.Get("/admin/movies", app.adminMovies)
		r.Post("/admin/movies", app.adminMovieCreate)
		r.Put("/admin/movies/{id}", app.adminMovieUpdate)
		r.Delete("/admin/movies/{id}", app.adminMovieDelete)
		r.Get("/admin/activity", app.adminActivity)
	})

	return router
}
