package transport

import (
	"net/http"

	"joyeria-api/internal/domain"
	"joyeria-api/internal/middleware"
	"joyeria-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart payload
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// CartResponse represents the cart contents plus its running total
type CartResponse struct {
	Items        []ProductResponse `json:"items"`
	Total        float64           `json:"total"`
	DisplayTotal string            `json:"display_total"`
}

// CartHandler handles HTTP requests for the per-identity shopping cart
type CartHandler struct {
	carts   service.CartService
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts service.CartService, catalog service.CatalogService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers cart routes; all of them require an identity
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.View)
		r.Post("/items", h.AddItem)
		r.Delete("/", h.Clear)
	})
}

// View handles reading the cart contents
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithErrorCode(w, http.StatusUnauthorized, middleware.CodeAuthRequired, "sign in to continue", nil)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.cartView(userID))
}

// AddItem handles adding a catalog item to the cart. Adding an item that is
// already present leaves the cart unchanged.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithErrorCode(w, http.StatusUnauthorized, middleware.CodeAuthRequired, "sign in to continue", nil)
		return
	}

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.carts.Add(userID, *product)

	h.logger.Info("Product added to cart",
		zap.String("user_id", userID),
		zap.String("product_id", product.ID),
	)

	middleware.RespondWithJSON(w, http.StatusOK, h.cartView(userID))
}

// Clear handles emptying the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithErrorCode(w, http.StatusUnauthorized, middleware.CodeAuthRequired, "sign in to continue", nil)
		return
	}

	h.carts.Clear(userID)

	middleware.RespondWithJSON(w, http.StatusOK, h.cartView(userID))
}

func (h *CartHandler) cartView(userID string) CartResponse {
	items := h.carts.Items(userID)
	cartTotal := h.carts.Total(userID)

	response := make([]ProductResponse, 0, len(items))
	for i := range items {
		response = append(response, toProductResponse(&items[i]))
	}

	return CartResponse{
		Items:        response,
		Total:        cartTotal,
		DisplayTotal: domain.FormatAmount(cartTotal),
	}
}
