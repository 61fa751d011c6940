package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopfront/internal/middleware"
	"shopfront/internal/repository"
	"shopfront/internal/service"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"
)

var (
	headphonesID = repository.ProductID("Wireless Headphones")
	sneakersID   = repository.ProductID("Athletic Sneakers")
)

// newTestRouter wires the handlers against in-memory stores
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := zap.NewNop()
	tokens := service.NewTokenService("test-secret", time.Hour)
	products := repository.NewCatalogRepository(repository.SeedProducts())

	userService := service.NewUserService(repository.NewMemoryUserRepository(), tokens, bcrypt.MinCost, nil)
	catalogService := service.NewCatalogService(products)
	cartService := service.NewCartService(repository.NewMemoryCartRepository(), products, nil)

	authMiddleware := middleware.AuthMiddleware(tokens, logger)

	r := chi.NewRouter()
	NewUserHandler(userService, logger).RegisterRoutes(r, authMiddleware)
	NewProductHandler(catalogService, logger).RegisterRoutes(r)
	NewCartHandler(cartService, logger).RegisterRoutes(r, authMiddleware)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d, body %s", w.Code, want, w.Body.String())
	}
}

func expectErrorMessage(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	resp := decode[middleware.ErrorResponse](t, w)
	if resp.Error.Message != want {
		t.Fatalf("error message = %q, want %q", resp.Error.Message, want)
	}
}

func registerUser(t *testing.T, h http.Handler, email string) AuthResponse {
	t.Helper()
	w := doRequest(t, h, "POST", "/api/auth/register", "", RegisterRequest{
		Email:    email,
		Password: "correct-horse",
		Name:     "Test User",
	})
	expectStatus(t, w, http.StatusOK)
	return decode[AuthResponse](t, w)
}
