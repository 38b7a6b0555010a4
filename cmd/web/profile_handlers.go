package main

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// listIcons scans the avatar directory on every request. The set is tiny and
// operators drop new images in without a restart.
func (app *Application) listIcons() ([]string, error) {
	entries, err := os.ReadDir(app.cfg.UI.IconsDir)
	if err != nil {
		return nil, err
	}
	var icons []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png":
			icons = append(icons, entry.Name())
		}
	}
	sort.Strings(icons)
	return icons, nil
}

func (app *Application) chooseIconForm(w http.ResponseWriter, r *http.Request) {
	icons, err := app.listIcons()
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	data := app.newTemplateData(r)
	data.Icons = icons
	app.Http.Render(w, r, http.StatusOK, "choose_icon.html", data)
}

func (app *Application) chooseIconPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.Http.BadRequest(w, r, "invalid form submission")
		return
	}
	icon := r.PostForm.Get("icon")
	session := app.sessionFromContext(r)

	if err := app.services.Auth.SetIcon(r.Context(), session.UserID, icon); err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	session.Icon = icon
	if err := app.sessionStore.Save(r.Context(), session); err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/genres", http.StatusFound)
}

func (app *Application) genresForm(w http.ResponseWriter, r *http.Request) {
	genres, err := app.services.Catalog.Tags(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	data := app.newTemplateData(r)
	data.Genres = genres
	app.Http.Render(w, r, http.StatusOK, "genres.html", data)
}

func (app *Application) genresPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.Http.BadRequest(w, r, "invalid form submission")
		return
	}
	session := app.sessionFromContext(r)
	genres := r.PostForm["favorite_genres"]

	if err := app.services.Auth.SetFavoriteGenres(r.Context(), session.UserID, genres); err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
