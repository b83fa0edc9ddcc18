package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/bellavista/ordering/internal/domain/auth"
	"github.com/bellavista/ordering/internal/domain/cart"
	"github.com/bellavista/ordering/internal/domain/menu"
	"github.com/bellavista/ordering/internal/domain/pricing"
)

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())
	h.writeCart(w, http.StatusOK, h.carts.Get(user.ID), "")
}

// addCartItem snapshots the menu item at add time and merges it into the
// user's cart. The snapshot means later menu edits never change this cart's
// pricing.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	var (
		itemID   string
		quantity = 1
	)
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "item_id":
			v, err := d.Str()
			itemID = v
			return err
		case "quantity":
			v, err := d.Int()
			quantity = v
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if itemID == "" {
		writeErr(w, http.StatusBadRequest, "item_id required")
		return
	}

	item, err := h.menu.GetByID(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			writeErr(w, http.StatusUnprocessableEntity, fmt.Sprintf("menu item %s not found", itemID))
			return
		}
		respondError(w, r, err)
		return
	}

	c := h.carts.Get(user.ID)
	if err := c.AddItem(*item, quantity); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.writeCart(w, http.StatusOK, c, fmt.Sprintf("%dx %s added to your order", quantity, item.Name))
}

// setCartQuantity overwrites a line's quantity. Zero removes the line;
// setting an absent line is a no-op, matching the cart contract.
func (h *Handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	quantity := -1
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "quantity":
			v, err := d.Int()
			quantity = v
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil || quantity < 0 {
		writeErr(w, http.StatusBadRequest, "quantity must be an integer >= 0")
		return
	}

	c := h.carts.Get(user.ID)
	c.SetQuantity(chi.URLParam(r, "itemID"), quantity)
	h.writeCart(w, http.StatusOK, c, "")
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	c := h.carts.Get(user.ID)
	msg := ""
	if c.Remove(chi.URLParam(r, "itemID")) {
		msg = "Removed from your order"
	}
	h.writeCart(w, http.StatusOK, c, msg)
}

// writeCart renders the cart with its derived totals, and an optional
// confirmation message (the UI shows it as a toast).
func (h *Handler) writeCart(w http.ResponseWriter, status int, c *cart.Cart, message string) {
	lines := c.Lines()
	quote := pricing.Calculate(lines).Rounded()

	writeJSON(w, status, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("items")
		e.ArrStart()
		for _, l := range lines {
			e.ObjStart()
			e.FieldStart("item")
			h.encodeMenuItem(e, l.Item)
			e.FieldStart("quantity")
			e.Int(l.Quantity)
			e.ObjEnd()
		}
		e.ArrEnd()
		e.FieldStart("total_items")
		e.Int(c.TotalItemCount())
		encodeMoney(e, "subtotal", quote.Subtotal)
		encodeMoney(e, "tax", quote.Tax)
		encodeMoney(e, "total", quote.Total)
		if message != "" {
			e.FieldStart("message")
			e.Str(message)
		}
		e.ObjEnd()
	})
}
