package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/bellavista/ordering/internal/domain/auth"
	"github.com/bellavista/ordering/internal/domain/profile"
)

// getProfile returns the caller's profile. A user who has never saved one
// gets an empty profile rather than a 404, mirroring get-or-create.
func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	p, err := h.profiles.Get(r.Context(), user.ID)
	switch {
	case errors.Is(err, profile.ErrNotFound):
		p = &profile.Profile{UserID: user.ID}
	case err != nil:
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeProfile(e, user, p)
	})
}

func (h *Handler) putProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	p := profile.Profile{UserID: user.ID}
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		var ferr error
		switch key {
		case "full_name":
			p.FullName, ferr = d.Str()
		case "phone":
			p.Phone, ferr = d.Str()
		case "address":
			p.Address, ferr = d.Str()
		default:
			ferr = d.Skip()
		}
		return ferr
	})
	if err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := h.profiles.Upsert(r.Context(), &p); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeProfile(e, user, &p)
	})
}

func encodeProfile(e *jx.Encoder, user auth.User, p *profile.Profile) {
	e.ObjStart()
	e.FieldStart("user_id")
	e.Str(p.UserID)
	e.FieldStart("email")
	e.Str(user.Email)
	e.FieldStart("full_name")
	e.Str(p.FullName)
	e.FieldStart("phone")
	e.Str(p.Phone)
	e.FieldStart("address")
	e.Str(p.Address)
	e.ObjEnd()
}
