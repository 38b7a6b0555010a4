package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nadav5199/persofy/internal/domain/filters"
	"github.com/nadav5199/persofy/internal/domain/models"
	"github.com/nadav5199/persofy/internal/lib/validator"
	"github.com/nadav5199/persofy/internal/services/catalog"
)

type movieForm struct {
	Name        string `schema:"name" validate:"required"`
	Actors      string `schema:"actors"`
	Description string `schema:"description"`
	PosterURL   string `schema:"poster_url" validate:"omitempty,url"`
	TrailerURL  string `schema:"trailer_url" validate:"omitempty,url"`
	Director    string `schema:"director"`
	Tags        string `schema:"tags"`
	Rating      string `schema:"rating"`
	Date        string `schema:"date"`
}

// toMovie turns the flat form into the domain shape. Actors and tags are
// comma-separated in the form; the date is yyyy-mm-dd from the date input.
func (f movieForm) toMovie(id string) (*models.Movie, error) {
	var date time.Time
	if f.Date != "" {
		parsed, err := time.Parse("2006-01-02", f.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}
	return &models.Movie{
		ID:          id,
		Name:        f.Name,
		Actors:      splitList(f.Actors),
		Description: f.Description,
		PosterURL:   f.PosterURL,
		TrailerURL:  f.TrailerURL,
		Director:    f.Director,
		Tags:        splitList(f.Tags),
		Rating:      f.Rating,
		Date:        date,
	}, nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (app *Application) adminMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	catalogFilters := filters.Catalog{
		Search: query.Get("search"),
		Sort:   query.Get("sort"),
	}
	movies, err := app.services.Catalog.List(r.Context(), catalogFilters)
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	data := app.newTemplateData(r)
	data.Movies = movies
	data.Search = catalogFilters.Search
	data.Sort = catalogFilters.Sort
	app.Http.Render(w, r, http.StatusOK, "edit_store.html", data)
}

func (app *Application) adminMovieCreate(w http.ResponseWriter, r *http.Request) {
	var form movieForm
	if err := app.decodeForm(r, &form); err != nil {
		app.Http.BadRequest(w, r, "invalid form submission")
		return
	}
	if formErrors := validator.ValidateStruct(app.validator, form); formErrors != nil {
		app.Http.BadRequest(w, r, "invalid movie fields")
		return
	}
	movie, err := form.toMovie("")
	if err != nil {
		app.Http.BadRequest(w, r, "invalid release date")
		return
	}

	if _, err := app.services.Catalog.Create(r.Context(), movie); err != nil {
		if errors.Is(err, catalog.ErrMovieAlreadyExists) {
			app.Http.BadRequest(w, r, "movie already exists")
			return
		}
		app.Http.ServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/movies", http.StatusSeeOther)
}

func (app *Application) adminMovieUpdate(w http.ResponseWriter, r *http.Request) {
	var form movieForm
	if err := app.decodeForm(r, &form); err != nil {
		app.Http.BadRequest(w, r, "invalid form submission")
		return
	}
	if formErrors := validator.ValidateStruct(app.validator, form); formErrors != nil {
		app.Http.BadRequest(w, r, "invalid movie fields")
		return
	}
	movie, err := form.toMovie(chi.URLParam(r, "id"))
	if err != nil {
		app.Http.BadRequest(w, r, "invalid release date")
		return
	}

	if _, err := app.services.Catalog.Update(r.Context(), movie); err != nil {
		switch {
		case errors.Is(err, catalog.ErrMovieNotFound):
			app.Http.NotFound(w, r, "Movie not found")
		case errors.Is(err, catalog.ErrMovieAlreadyExists):
			app.Http.BadRequest(w, r, "movie already exists")
		default:
			app.Http.ServerError(w, r, err)
		}
		return
	}
	http.Redirect(w, r, "/admin/movies", http.StatusSeeOther)
}

func (app *Application) adminMovieDelete(w http.ResponseWriter, r *http.Request) {
	if err := app.services.Catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, catalog.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "Movie not found")
			return
		}
		app.Http.ServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/movies", http.StatusSeeOther)
}

func (app *Application) adminActivity(w http.ResponseWriter, r *http.Request) {
	activities, err := app.services.Activity.List(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	data := app.newTemplateData(r)
	data.Activities = activities
	data.Search = r.URL.Query().Get("username")
	app.Http.Render(w, r, http.StatusOK, "admin_activity.html", data)
}
