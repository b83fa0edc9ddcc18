package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bellavista/ordering/internal/domain/checkout"
	"github.com/bellavista/ordering/internal/domain/membership"
	"github.com/bellavista/ordering/internal/domain/menu"
	"github.com/bellavista/ordering/internal/domain/order"
	"github.com/bellavista/ordering/internal/domain/payment"
	"github.com/bellavista/ordering/internal/domain/profile"
)

const maxBodyBytes = 1 << 20

// writeJSON encodes a response with the given encode callback.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeErr sends the standard {code, message} error body.
func writeErr(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("code")
		e.Int(status)
		e.FieldStart("message")
		e.Str(message)
		e.ObjEnd()
	})
}

// respondError maps domain errors onto the HTTP error taxonomy: not-found is
// a distinct condition (the client redirects), declined payments point at
// the payment method, precondition failures are client errors, and anything
// else is a generic retryable failure.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, menu.ErrNotFound):
		writeErr(w, http.StatusNotFound, "menu item not found")
	case errors.Is(err, order.ErrNotFound):
		writeErr(w, http.StatusNotFound, "order not found")
	case errors.Is(err, profile.ErrNotFound):
		writeErr(w, http.StatusNotFound, "profile not found")
	case errors.Is(err, membership.ErrNotMember):
		writeErr(w, http.StatusNotFound, "no active membership")
	case errors.Is(err, checkout.ErrEmptyCart):
		writeErr(w, http.StatusBadRequest, "cart is empty")
	case errors.Is(err, checkout.ErrNoUser):
		writeErr(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, payment.ErrDeclined):
		writeErr(w, http.StatusPaymentRequired, "payment was declined, try another method")
	default:
		zctx.From(r.Context()).Error("Request failed", zap.Error(err))
		writeErr(w, http.StatusServiceUnavailable, "something went wrong, please try again")
	}
}

// decodeBody reads the request body and walks its top-level object, calling
// field for every key. Unknown keys must be skipped by the callback's
// default branch.
func decodeBody(r *http.Request, field func(d *jx.Decoder, key string) error) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(err, "read body")
	}
	d := jx.DecodeBytes(data)
	return d.Obj(func(d *jx.Decoder, key string) error {
		return field(d, key)
	})
}

// encodeMoney writes a fixed two-decimal JSON number.
func encodeMoney(e *jx.Encoder, field string, v decimal.Decimal) {
	e.FieldStart(field)
	e.Num(jx.Num(v.StringFixed(2)))
}
