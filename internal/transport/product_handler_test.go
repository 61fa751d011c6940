package transport

import (
	"net/http"
	"sort"
	"testing"

	"shopfront/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestListProducts(t *testing.T) {
	h := newTestRouter(t)

	w := doRequest(t, h, "GET", "/api/products", "", nil)
	expectStatus(t, w, http.StatusOK)

	if products := decode[[]domain.Product](t, w); len(products) != 10 {
		t.Fatalf("expected 10 products, got %d", len(products))
	}
}

func TestListProducts_Filters(t *testing.T) {
	h := newTestRouter(t)

	w := doRequest(t, h, "GET", "/api/products?category=electronics", "", nil)
	expectStatus(t, w, http.StatusOK)
	for _, p := range decode[[]domain.Product](t, w) {
		if p.Category != "Electronics" {
			t.Errorf("unexpected category %q", p.Category)
		}
	}

	w = doRequest(t, h, "GET", "/api/products?search=HEADPHONES", "", nil)
	expectStatus(t, w, http.StatusOK)
	products := decode[[]domain.Product](t, w)
	if len(products) != 1 || products[0].ID != headphonesID {
		t.Fatalf("unexpected search result %+v", products)
	}

	w = doRequest(t, h, "GET", "/api/products?category=Nope", "", nil)
	expectStatus(t, w, http.StatusOK)
	if w.Body.String() != "[]\n" {
		t.Fatalf("expected empty array, got %q", w.Body.String())
	}
}

func TestGetProduct(t *testing.T) {
	h := newTestRouter(t)

	w := doRequest(t, h, "GET", "/api/products/"+sneakersID.String(), "", nil)
	expectStatus(t, w, http.StatusOK)
	if p := decode[domain.Product](t, w); p.Name != "Athletic Sneakers" {
		t.Fatalf("unexpected product %+v", p)
	}
}

func TestProperty_UnknownProductIDsAreNotFound(t *testing.T) {
	h := newTestRouter(t)
	properties := gopter.NewProperties(nil)

	properties.Property("unknown or malformed ids yield 404", prop.ForAll(
		func(id string) bool {
			w := doRequest(t, h, "GET", "/api/products/"+id, "", nil)
			return w.Code == http.StatusNotFound
		},
		gen.Identifier(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestGetProduct_RandomUUIDIsNotFound(t *testing.T) {
	h := newTestRouter(t)

	w := doRequest(t, h, "GET", "/api/products/"+uuid.NewString(), "", nil)

	expectStatus(t, w, http.StatusNotFound)
	expectErrorMessage(t, w, "Product not found")
}

func TestListCategories(t *testing.T) {
	h := newTestRouter(t)

	w := doRequest(t, h, "GET", "/api/categories", "", nil)
	expectStatus(t, w, http.StatusOK)

	resp := decode[map[string][]string](t, w)
	categories := resp["categories"]
	if len(categories) != 7 {
		t.Fatalf("expected 7 categories, got %v", categories)
	}
	if !sort.StringsAreSorted(categories) {
		t.Fatalf("categories not sorted: %v", categories)
	}
}
