package transport

import (
	"net/http"

	"joyeria-api/internal/domain"
	"joyeria-api/internal/middleware"
	"joyeria-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductRequest represents the admin create/update payload
type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

// ProductResponse represents a catalog item as rendered to clients. Price is
// both the raw number and the "S/" display string so clients never parse money.
type ProductResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DisplayPrice string  `json:"display_price"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
}

// CommentResponse represents one piece of buyer feedback on a product
type CommentResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text,omitempty"`
	Rating    int    `json:"rating"`
	CreatedAt string `json:"created_at"`
}

// ProductDetailResponse is the detail screen payload
type ProductDetailResponse struct {
	Product       ProductResponse   `json:"product"`
	AverageRating float64           `json:"average_rating"`
	Comments      []CommentResponse `json:"comments"`
}

// CatalogHandler handles HTTP requests for browsing and administering the catalog
type CatalogHandler struct {
	catalog service.CatalogService
	store   domain.StoreLocation
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog service.CatalogService, store domain.StoreLocation, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		store:   store,
		logger:  logger,
	}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	// Public browsing surface
	r.Get("/api/products", h.List)
	r.Get("/api/products/{id}", h.Detail)
	r.Get("/api/store", h.StoreLocation)

	// Admin catalog management
	r.Route("/api/admin/products", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin(h.logger))
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles catalog browsing, optionally filtered by the q query parameter
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	products, err := h.catalog.Browse(r.Context(), query)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	response := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}

// Detail handles the product detail screen: the item plus its feedback
func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.catalog.Detail(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	comments := make([]CommentResponse, 0, len(detail.Comments))
	for _, c := range detail.Comments {
		comments = append(comments, CommentResponse{
			ID:        c.ID,
			Text:      c.Text,
			Rating:    c.Rating,
			CreatedAt: c.CreatedAt.Format(domain.OrderTimeFormat),
		})
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductDetailResponse{
		Product:       toProductResponse(detail.Product),
		AverageRating: detail.AverageRating,
		Comments:      comments,
	})
}

// StoreLocation handles the store map endpoint
func (h *CatalogHandler) StoreLocation(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.store)
}

// Create handles admin product creation
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), service.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, toProductResponse(product))
}

// Update handles admin product updates
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, service.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// Delete handles admin product removal
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		DisplayPrice: p.DisplayPrice(),
		Description:  p.Description,
		ImageURL:     p.ImageURL,
	}
}
