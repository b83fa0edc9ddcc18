package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"

	"github.com/bellavista/ordering/internal/domain/auth"
	"github.com/bellavista/ordering/internal/domain/membership"
	"github.com/bellavista/ordering/internal/domain/payment"
)

func (h *Handler) listTiers(w http.ResponseWriter, r *http.Request) {
	tiers := membership.Tiers()
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ArrStart()
		for _, t := range tiers {
			e.ObjStart()
			e.FieldStart("tier")
			e.Str(string(t.Tier))
			encodeMoney(e, "monthly_price", t.MonthlyPrice)
			e.FieldStart("popular")
			e.Bool(t.Popular)
			e.FieldStart("benefits")
			e.ArrStart()
			for _, b := range t.Benefits {
				e.Str(b)
			}
			e.ArrEnd()
			e.ObjEnd()
		}
		e.ArrEnd()
	})
}

func (h *Handler) getMembership(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	m, err := h.memberships.Get(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeMembership(e, m)
	})
}

func (h *Handler) joinMembership(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	var (
		tierStr   string
		methodStr = string(payment.MethodCard)
	)
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		var ferr error
		switch key {
		case "tier":
			tierStr, ferr = d.Str()
		case "payment_method":
			methodStr, ferr = d.Str()
		default:
			ferr = d.Skip()
		}
		return ferr
	})
	if err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}

	tier, err := membership.ParseTier(tierStr)
	if err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	method, err := payment.ParseMethod(methodStr)
	if err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	m, err := h.memberships.Join(r.Context(), user.ID, tier, method)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		encodeMembership(e, m)
	})
}

func (h *Handler) cancelMembership(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	if err := h.memberships.Cancel(r.Context(), user.ID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func encodeMembership(e *jx.Encoder, m *membership.Membership) {
	e.ObjStart()
	e.FieldStart("tier")
	e.Str(string(m.Tier))
	e.FieldStart("since")
	e.Str(m.Since.UTC().Format(time.RFC3339))
	e.ObjEnd()
}
