package transport

import (
	"fmt"
	"math"
	"net/http"
	"testing"

	"shopfront/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func addPath(productID fmt.Stringer, quantity int) string {
	return fmt.Sprintf("/api/cart/add?product_id=%s&quantity=%d", productID, quantity)
}

func updatePath(productID fmt.Stringer, quantity int) string {
	return fmt.Sprintf("/api/cart/update?product_id=%s&quantity=%d", productID, quantity)
}

func getCart(t *testing.T, h http.Handler, token string) domain.CartView {
	t.Helper()
	w := doRequest(t, h, "GET", "/api/cart", token, nil)
	expectStatus(t, w, http.StatusOK)
	return decode[domain.CartView](t, w)
}

func TestCartRoutesRequireAuth(t *testing.T) {
	h := newTestRouter(t)

	routes := []struct{ method, path string }{
		{"GET", "/api/cart"},
		{"DELETE", "/api/cart"},
		{"POST", addPath(headphonesID, 1)},
		{"PUT", updatePath(headphonesID, 1)},
		{"DELETE", "/api/cart/remove/" + headphonesID.String()},
	}

	for _, rt := range routes {
		w := doRequest(t, h, rt.method, rt.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", rt.method, rt.path, w.Code)
		}
	}
}

func TestGetCart_EmptyForNewUser(t *testing.T) {
	h := newTestRouter(t)
	token := registerUser(t, h, "jane@example.com").Token

	view := getCart(t, h, token)

	if len(view.Items) != 0 || view.Total != 0 || view.UpdatedAt != nil {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}

func TestAddItem_DefaultsAndMerges(t *testing.T) {
	h := newTestRouter(t)
	token := registerUser(t, h, "jane@example.com").Token

	w := doRequest(t, h, "POST", "/api/cart/add?product_id="+headphonesID.String(), token, nil)
	expectStatus(t, w, http.StatusOK)
	resp := decode[AddToCartResponse](t, w)
	if resp.Message != "Item added to cart" || resp.CartItems != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}

	w = doRequest(t, h, "POST", addPath(headphonesID, 2), token, nil)
	expectStatus(t, w, http.StatusOK)
	if decode[AddToCartResponse](t, w).CartItems != 1 {
		t.Fatal("adding the same product must not add a line")
	}

	w = doRequest(t, h, "POST", addPath(sneakersID, 1), token, nil)
	expectStatus(t, w, http.StatusOK)
	if decode[AddToCartResponse](t, w).CartItems != 2 {
		t.Fatal("expected two lines")
	}

	view := getCart(t, h, token)
	if len(view.Items) != 2 || view.Items[0].Quantity != 3 || view.ItemCount != 4 {
		t.Fatalf("unexpected cart %+v", view)
	}
	want := 3*199.99 + 129.99
	if math.Abs(view.Total-want) > 1e-9 {
		t.Fatalf("total = %v, want %v", view.Total, want)
	}
}

func TestAddItem_Errors(t *testing.T) {
	h := newTestRouter(t)
	token := registerUser(t, h, "jane@example.com").Token

	tests := []struct {
		name    string
		path    string
		status  int
		message string
	}{
		{"unknown product", "/api/cart/add?product_id=not-a-uuid", http.StatusNotFound, "Product not found"},
		{"missing product", "/api/cart/add", http.StatusBadRequest, "validation failed"},
		{"zero quantity", addPath(headphonesID, 0), http.StatusBadRequest, "Quantity must be at least 1"},
		{"negative quantity", addPath(headphonesID, -3), http.StatusBadRequest, "Quantity must be at least 1"},
		{"non-integer quantity", "/api/cart/add?product_id=" + headphonesID.String() + "&quantity=two", http.StatusBadRequest, "validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, h, "POST", tt.path, token, nil)
			expectStatus(t, w, tt.status)
			expectErrorMessage(t, w, tt.message)
		})
	}

	if view := getCart(t, h, token); view.UpdatedAt != nil {
		t.Fatal("failed adds must not create a cart")
	}
}

func TestUpdateItem(t *testing.T) {
	h := newTestRouter(t)
	token := registerUser(t, h, "jane@example.com").Token

	w := doRequest(t, h, "PUT", updatePath(headphonesID, 2), token, nil)
	expectStatus(t, w, http.StatusNotFound)
	expectErrorMessage(t, w, "Cart not found")

	expectStatus(t, doRequest(t, h, "POST", addPath(headphonesID, 1), token, nil), http.StatusOK)

	w = doRequest(t, h, "PUT", updatePath(sneakersID, 2), token, nil)
	expectStatus(t, w, http.StatusNotFound)
	expectErrorMessage(t, w, "Item not found in cart")

	w = doRequest(t, h, "PUT", updatePath(headphonesID, 5), token, nil)
	expectStatus(t, w, http.StatusOK)
	if decode[MessageResponse](t, w).Message != "Cart updated" {
		t.Fatal("unexpected message")
	}
	if view := getCart(t, h, token); view.Items[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", view.Items[0].Quantity)
	}

	expectStatus(t, doRequest(t, h, "PUT", updatePath(headphonesID, 0), token, nil), http.StatusOK)
	if view := getCart(t, h, token); len(view.Items) != 0 {
		t.Fatalf("expected line removed, got %+v", view.Items)
	}

	w = doRequest(t, h, "PUT", "/api/cart/update?product_id="+headphonesID.String(), token, nil)
	expectStatus(t, w, http.StatusBadRequest)
}

func TestRemoveItem_IsIdempotent(t *testing.T) {
	h := newTestRouter(t)
	token := registerUser(t, h, "jane@example.com").Token
	path := "/api/cart/remove/" + headphonesID.String()

	w := doRequest(t, h, "DELETE", path, token, nil)
	expectStatus(t, w, http.StatusOK)
	if decode[MessageResponse](t, w).Message != "Item removed from cart" {
		t.Fatal("unexpected message")
	}

	expectStatus(t, doRequest(t, h, "POST", addPath(headphonesID, 1), token, nil), http.StatusOK)
	expectStatus(t, doRequest(t, h, "POST", addPath(sneakersID, 1), token, nil), http.StatusOK)

	for i := 0; i < 2; i++ {
		expectStatus(t, doRequest(t, h, "DELETE", path, token, nil), http.StatusOK)
	}
	expectStatus(t, doRequest(t, h, "DELETE", "/api/cart/remove/garbage", token, nil), http.StatusOK)

	view := getCart(t, h, token)
	if len(view.Items) != 1 || view.Items[0].Product.ID != sneakersID {
		t.Fatalf("unexpected cart %+v", view.Items)
	}
}

func TestClearCart(t *testing.T) {
	h := newTestRouter(t)
	token := registerUser(t, h, "jane@example.com").Token

	expectStatus(t, doRequest(t, h, "DELETE", "/api/cart", token, nil), http.StatusOK)
	expectStatus(t, doRequest(t, h, "POST", addPath(headphonesID, 2), token, nil), http.StatusOK)
	expectStatus(t, doRequest(t, h, "DELETE", "/api/cart", token, nil), http.StatusOK)

	view := getCart(t, h, token)
	if len(view.Items) != 0 || view.Total != 0 {
		t.Fatalf("expected cleared cart, got %+v", view)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	h := newTestRouter(t)
	alice := registerUser(t, h, "alice@example.com").Token
	bob := registerUser(t, h, "bob@example.com").Token

	expectStatus(t, doRequest(t, h, "POST", addPath(headphonesID, 1), alice, nil), http.StatusOK)

	if view := getCart(t, h, bob); len(view.Items) != 0 {
		t.Fatalf("bob sees alice's items: %+v", view.Items)
	}
}

func TestProperty_AddedQuantitiesAccumulate(t *testing.T) {
	h := newTestRouter(t)
	properties := gopter.NewProperties(nil)

	user := 0
	properties.Property("line quantity is the sum of added quantities", prop.ForAll(
		func(quantities []int) bool {
			user++
			token := registerUser(t, h, fmt.Sprintf("user%d@example.com", user)).Token

			sum := 0
			for _, q := range quantities {
				if doRequest(t, h, "POST", addPath(sneakersID, q), token, nil).Code != http.StatusOK {
					return false
				}
				sum += q
			}

			view := getCart(t, h, token)
			return len(view.Items) == 1 &&
				view.Items[0].Quantity == sum &&
				view.ItemCount == sum &&
				math.Abs(view.Total-float64(sum)*129.99) < 1e-6
		},
		gen.SliceOfN(5, gen.IntRange(1, 20)).SuchThat(func(qs []int) bool { return len(qs) > 0 }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
