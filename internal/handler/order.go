package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"

	"github.com/bellavista/ordering/internal/domain/auth"
	"github.com/bellavista/ordering/internal/domain/order"
	"github.com/bellavista/ordering/internal/domain/payment"
)

// confirmCheckout runs the checkout pipeline for the caller's cart.
func (h *Handler) confirmCheckout(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	methodStr := string(payment.MethodCard)
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "payment_method":
			v, err := d.Str()
			methodStr = v
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}
	method, err := payment.ParseMethod(methodStr)
	if err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	o, err := h.checkout.Confirm(r.Context(), user, h.carts.Get(user.ID), method)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		encodeOrder(e, o)
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	o, err := h.orders.GetByID(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	// Row-level access: an order belongs to exactly one user.
	if o.UserID != user.ID {
		respondError(w, r, order.ErrNotFound)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeOrder(e, o)
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	orders, err := h.orders.ListByUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ArrStart()
		for i := range orders {
			encodeOrder(e, &orders[i])
		}
		e.ArrEnd()
	})
}

func encodeOrder(e *jx.Encoder, o *order.Order) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(o.ID)
	encodeMoney(e, "subtotal", o.Subtotal)
	encodeMoney(e, "tax", o.Tax)
	encodeMoney(e, "total_amount", o.Total)
	e.FieldStart("status")
	e.Str(string(o.Status))
	e.FieldStart("delivery_address")
	e.Str(o.DeliveryAddress)
	e.FieldStart("created_at")
	e.Str(o.CreatedAt.UTC().Format(time.RFC3339))
	e.FieldStart("items")
	e.ArrStart()
	for _, l := range o.Lines {
		e.ObjStart()
		e.FieldStart("item_name")
		e.Str(l.ItemName)
		e.FieldStart("quantity")
		e.Int(l.Quantity)
		encodeMoney(e, "price", l.UnitPrice)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
}
