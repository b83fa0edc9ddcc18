package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"

	"github.com/bellavista/ordering/internal/domain/menu"
)

// listMenu returns the catalog, optionally filtered by ?category=.
func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	var (
		items []menu.Item
		err   error
	)
	if raw := r.URL.Query().Get("category"); raw != "" {
		c := menu.Category(raw)
		if !c.Valid() {
			writeErr(w, http.StatusUnprocessableEntity, "unknown category "+raw)
			return
		}
		items, err = h.menu.ListByCategory(r.Context(), c)
	} else {
		items, err = h.menu.List(r.Context())
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ArrStart()
		for i := range items {
			h.encodeMenuItem(e, items[i])
		}
		e.ArrEnd()
	})
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.menu.GetByID(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encodeMenuItem(e, *item)
	})
}

func (h *Handler) encodeMenuItem(e *jx.Encoder, it menu.Item) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(it.ID)
	e.FieldStart("name")
	e.Str(it.Name)
	e.FieldStart("description")
	e.Str(it.Description)
	encodeMoney(e, "price", it.Price)
	e.FieldStart("image")
	e.Str(h.imageURL(it.Image))
	e.FieldStart("category")
	e.Str(string(it.Category))
	e.FieldStart("popular")
	e.Bool(it.Popular)
	e.ObjEnd()
}

// imageURL prepends the configured base URL to relative image paths.
func (h *Handler) imageURL(path string) string {
	if h.imageBaseURL == "" || path == "" || strings.Contains(path, "://") {
		return path
	}
	return strings.TrimSuffix(h.imageBaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
