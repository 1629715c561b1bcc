package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"go-reusable-content/internal/contentmanager"
	"go-reusable-content/internal/loader"
	"go-reusable-content/internal/model"
	"go-reusable-content/internal/setuppath"
	"go-reusable-content/internal/storage"
	"go-reusable-content/internal/templating"

	"github.com/go-chi/chi/v5"
)

// application holds the dependencies of the HTTP handlers.
type application struct {
	logger  *slog.Logger
	manager *contentmanager.Manager
	engine  *templating.Engine
}

// titleParam returns the {title} URL parameter, decoded. chi matches on
// RawPath when the request has one, so the parameter is only still escaped then.
func titleParam(r *http.Request) string {
	raw := chi.URLParam(r, "title")
	if r.URL.RawPath == "" {
		return raw
	}
	if title, err := url.PathUnescape(raw); err == nil {
		return title
	}
	return raw
}

func (app *application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError maps domain errors to HTTP status codes.
func (app *application) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrEmptyTitle), errors.Is(err, setuppath.ErrOutsideLayouts):
		status = http.StatusBadRequest
	case errors.Is(err, os.ErrNotExist), errors.Is(err, loader.ErrNoSourceFile):
		// The entry points at a source file that isn't there.
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		app.logger.Error("Request failed", "error", err)
	}
	app.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (app *application) writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(html)); err != nil {
		app.logger.Error("Failed to write HTML response", "error", err)
	}
}

func (app *application) listHandler(w http.ResponseWriter, r *http.Request) {
	records, err := app.manager.List()
	if err != nil {
		app.writeError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, records)
}

func (app *application) getHandler(w http.ResponseWriter, r *http.Request) {
	record, err := app.manager.Get(titleParam(r))
	if err != nil {
		app.writeError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, record)
}

// putHandler ensures the entry described by the body. The title in the URL wins
// over any title in the body.
func (app *application) putHandler(w http.ResponseWriter, r *http.Request) {
	var info model.ReusableContentInfo
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&info); err != nil {
		app.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: " + err.Error()})
		return
	}
	info.Title = titleParam(r)

	if err := app.manager.Ensure(&info); err != nil {
		app.writeError(w, err)
		return
	}
	record, err := app.manager.Get(info.Title)
	if err != nil {
		app.writeError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, record)
}

func (app *application) deleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.manager.Delete(titleParam(r)); err != nil {
		app.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) pathHandler(w http.ResponseWriter, r *http.Request) {
	path, err := app.manager.HTMLFilePath(titleParam(r))
	if err != nil {
		app.writeError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

func (app *application) syncHandler(w http.ResponseWriter, r *http.Request) {
	updated, err := app.manager.Sync()
	if err != nil {
		// Partial syncs still report what was done.
		app.logger.Warn("Sync finished with errors", "updated", updated, "error", err)
		app.writeJSON(w, http.StatusMultiStatus, map[string]any{"updated": updated, "error": err.Error()})
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]any{"updated": updated})
}

func (app *application) ribbonHandler(w http.ResponseWriter, r *http.Request) {
	html, err := app.engine.RenderRibbon()
	if err != nil {
		app.logger.Error("Failed to render ribbon", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	app.writeHTML(w, html)
}

func (app *application) previewHandler(w http.ResponseWriter, r *http.Request) {
	html, err := app.engine.Preview(titleParam(r))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		app.logger.Error("Failed to render preview", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	app.writeHTML(w, html)
}
