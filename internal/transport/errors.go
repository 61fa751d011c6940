package transport

import (
	"errors"
	"net/http"

	"shopfront/internal/domain"
	"shopfront/internal/middleware"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// respondWithDomainError maps service errors onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500.
func respondWithDomainError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrCartNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "Cart not found")
	case errors.Is(err, domain.ErrCartItemNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "Item not found in cart")
	case errors.Is(err, domain.ErrUserNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrEmailAlreadyRegistered):
		middleware.RespondWithError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		middleware.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrInvalidQuantity):
		middleware.RespondWithError(w, http.StatusBadRequest, "Quantity must be at least 1")
	default:
		logger.Error("Request failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// respondWithBodyError reports a failed DecodeAndValidate call
func respondWithBodyError(w http.ResponseWriter, err error) {
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}

// parseProductID parses a product id from the request. Malformed ids map
// to uuid.Nil, which never matches a product or cart line.
func parseProductID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
