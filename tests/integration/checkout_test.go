//go:build integration

package integration

import (
	"net/http"
	"regexp"
	"testing"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func clearCart(t *testing.T) {
	t.Helper()

	resp := doGetAuth(t, "/api/cart")
	defer resp.Body.Close()
	c := decodeJSON[cartResponse](t, resp)
	for _, l := range c.Items {
		r := doRequest(t, http.MethodDelete, "/api/cart/items/"+l.Item.ID, nil, testToken)
		r.Body.Close()
	}
}

func TestCart_RequiresAuth(t *testing.T) {
	resp := doGet(t, "/api/cart")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCart_RejectsInvalidToken(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/cart", nil, wrongToken)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCheckout_FullFlow(t *testing.T) {
	clearCart(t)

	// Add 2x pizza and 1x cake.
	resp := doRequest(t, http.MethodPost, "/api/cart/items",
		map[string]any{"item_id": "1", "quantity": 2}, testToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doRequest(t, http.MethodPost, "/api/cart/items",
		map[string]any{"item_id": "4"}, testToken)
	c := decodeJSON[cartResponse](t, resp)
	resp.Body.Close()

	if c.TotalItems != 3 {
		t.Errorf("total_items = %d, want 3", c.TotalItems)
	}
	if c.Subtotal != 42.97 {
		t.Errorf("subtotal = %v, want 42.97", c.Subtotal)
	}
	if c.Tax != 3.44 {
		t.Errorf("tax = %v, want 3.44", c.Tax)
	}
	if c.Total != 46.41 {
		t.Errorf("total = %v, want 46.41", c.Total)
	}

	// Confirm the order.
	resp = doRequest(t, http.MethodPost, "/api/checkout",
		map[string]any{"payment_method": "card"}, testToken)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("checkout: expected 201, got %d", resp.StatusCode)
	}
	o := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()

	if !uuidPattern.MatchString(o.ID) {
		t.Errorf("order id %q is not a UUID", o.ID)
	}
	if o.TotalAmount != 46.41 {
		t.Errorf("total_amount = %v, want 46.41", o.TotalAmount)
	}
	if o.Status != "pending" {
		t.Errorf("status = %q, want pending", o.Status)
	}
	if len(o.Items) != 2 {
		t.Fatalf("order items = %d, want 2", len(o.Items))
	}

	// The cart is empty after checkout.
	resp = doGetAuth(t, "/api/cart")
	c = decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if c.TotalItems != 0 {
		t.Errorf("cart not cleared: total_items = %d", c.TotalItems)
	}

	// The order shows up in history.
	resp = doGetAuth(t, "/api/orders/" + o.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get order: expected 200, got %d", resp.StatusCode)
	}
	fetched := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()
	if fetched.ID != o.ID {
		t.Errorf("fetched order id = %q, want %q", fetched.ID, o.ID)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	clearCart(t)

	resp := doRequest(t, http.MethodPost, "/api/checkout", map[string]any{}, testToken)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCheckout_UnknownPaymentMethod(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/checkout",
		map[string]any{"payment_method": "cheque"}, testToken)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestOrders_UnknownOrder(t *testing.T) {
	resp := doGetAuth(t, "/api/orders/00000000-0000-0000-0000-000000000000")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestProfile_RoundTrip(t *testing.T) {
	resp := doRequest(t, http.MethodPut, "/api/profile", map[string]any{
		"full_name": "Integration Tester",
		"phone":     "555-0100",
		"address":   "42 Test Lane",
	}, testToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put profile: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doGetAuth(t, "/api/profile")
	p := decodeJSON[profileResponse](t, resp)
	resp.Body.Close()

	if p.FullName != "Integration Tester" {
		t.Errorf("full_name = %q", p.FullName)
	}
	if p.Address != "42 Test Lane" {
		t.Errorf("address = %q", p.Address)
	}
	if p.Email == "" {
		t.Error("email should be populated from the access token")
	}
}
