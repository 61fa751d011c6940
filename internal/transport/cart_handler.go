package transport

import (
	"net/http"

	"shopfront/internal/middleware"
	"shopfront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddToCartResponse is returned by POST /api/cart/add
type AddToCartResponse struct {
	Message   string `json:"message"`
	CartItems int    `json:"cart_items"`
}

// MessageResponse carries a human readable acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// CartHandler handles the authenticated cart routes
type CartHandler struct {
	carts  service.CartService
	logger *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		logger: logger,
	}
}

// RegisterRoutes registers the cart routes behind authMiddleware
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/add", h.AddItem)
		r.Put("/update", h.UpdateItem)
		r.Delete("/remove/{product_id}", h.RemoveItem)
	})
}

func (h *CartHandler) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Error("User ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
	}
	return userID, ok
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	view, err := h.carts.ViewCart(r.Context(), userID)
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// AddItem handles POST /api/cart/add?product_id=&quantity=
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	rawID := r.URL.Query().Get("product_id")
	if rawID == "" {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "product_id", Message: "This field is required"},
		})
		return
	}
	quantity, verr := middleware.QueryInt(r, "quantity", 1, false)
	if verr != nil {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{*verr})
		return
	}

	lines, err := h.carts.AddItem(r.Context(), userID, parseProductID(rawID), quantity)
	if err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, AddToCartResponse{
		Message:   "Item added to cart",
		CartItems: lines,
	})
}

// UpdateItem handles PUT /api/cart/update?product_id=&quantity=
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var errs []middleware.ValidationError
	rawID := r.URL.Query().Get("product_id")
	if rawID == "" {
		errs = append(errs, middleware.ValidationError{Field: "product_id", Message: "This field is required"})
	}
	quantity, verr := middleware.QueryInt(r, "quantity", 0, true)
	if verr != nil {
		errs = append(errs, *verr)
	}
	if len(errs) > 0 {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	if err := h.carts.UpdateItem(r.Context(), userID, parseProductID(rawID), quantity); err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Cart updated"})
}

// RemoveItem handles DELETE /api/cart/remove/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(r.Context(), userID, parseProductID(chi.URLParam(r, "product_id"))); err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Item removed from cart"})
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.carts.ClearCart(r.Context(), userID); err != nil {
		respondWithDomainError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Cart cleared"})
}
