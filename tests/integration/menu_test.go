//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestMenu_ListAll(t *testing.T) {
	resp := doGet(t, "/api/menu")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	items := decodeJSON[[]menuItemResponse](t, resp)
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}

	byID := make(map[string]menuItemResponse, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	pizza, ok := byID["1"]
	if !ok {
		t.Fatal("expected menu item 1")
	}
	if pizza.Name != "Margherita Pizza" {
		t.Errorf("item 1 name = %q", pizza.Name)
	}
	if pizza.Price != 16.99 {
		t.Errorf("item 1 price = %v", pizza.Price)
	}
	if !pizza.Popular {
		t.Error("item 1 should be popular")
	}
}

func TestMenu_FilterByCategory(t *testing.T) {
	resp := doGet(t, "/api/menu?category=desserts")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	items := decodeJSON[[]menuItemResponse](t, resp)
	if len(items) != 1 {
		t.Fatalf("expected 1 dessert, got %d", len(items))
	}
	if items[0].Category != "desserts" {
		t.Errorf("category = %q", items[0].Category)
	}
}

func TestMenu_UnknownCategory(t *testing.T) {
	resp := doGet(t, "/api/menu?category=snacks")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestMenu_GetByID(t *testing.T) {
	resp := doGet(t, "/api/menu/4")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	item := decodeJSON[menuItemResponse](t, resp)
	if item.Name != "Chocolate Lava Cake" {
		t.Errorf("name = %q", item.Name)
	}
}

func TestMenu_GetUnknownID(t *testing.T) {
	resp := doGet(t, "/api/menu/999")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	errResp := decodeJSON[errorResponse](t, resp)
	if errResp.Code != http.StatusNotFound {
		t.Errorf("error code = %d", errResp.Code)
	}
}
