package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AladdinPP/prox-moble/internal/domain"
	"github.com/AladdinPP/prox-moble/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	carts *usecase.CartService
	saved domain.SavedCartRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(carts *usecase.CartService, saved domain.SavedCartRepository) *Handler {
	return &Handler{carts: carts, saved: saved}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "prox-backend",
		"version": "1.0.0",
	})
}

// optimizeResponse wraps the optimization outcome for the client.
type optimizeResponse struct {
	SearchTerms        []string                   `json:"search_terms"`
	BestCart           *domain.OptimizedCart      `json:"best_cart,omitempty"`
	SingleStoreResults []domain.SingleStoreResult `json:"single_store_results,omitempty"`
	Message            string                     `json:"message,omitempty"`
}

// OptimizeCart handles cart-optimization search requests
func (h *Handler) OptimizeCart(c *gin.Context) {
	var request domain.OptimizeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.carts.Optimize(c.Request.Context(), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	response := optimizeResponse{
		SearchTerms:        result.SearchTerms,
		BestCart:           result.BestCart,
		SingleStoreResults: result.SingleStoreResults,
	}
	if request.StoreLimit == 1 && len(result.SingleStoreResults) == 0 {
		response.Message = "No single store has everything on your list. Try allowing more stores."
	}

	c.JSON(http.StatusOK, response)
}

// SearchDeals handles flat single-deal search requests
func (h *Handler) SearchDeals(c *gin.Context) {
	var request domain.DealSearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deals, err := h.carts.SearchDeals(c.Request.Context(), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deals": deals, "count": len(deals)})
}

// LastResult returns the most recent optimization outcome, if still cached
func (h *Handler) LastResult(c *gin.Context) {
	result, err := h.carts.LastResult(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no recent search result"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// saveCartRequest is a best-cart snapshot the client wants to keep.
type saveCartRequest struct {
	TotalPrice float64           `json:"total_price" binding:"gte=0"`
	Stores     []domain.StoreID  `json:"stores" binding:"required,min=1"`
	Items      []domain.CartItem `json:"items" binding:"required,min=1"`
}

// SaveCart stores a best-cart snapshot
func (h *Handler) SaveCart(c *gin.Context) {
	var request saveCartRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.saved.Save(c.Request.Context(), domain.SavedCart{
		TotalPrice: request.TotalPrice,
		Stores:     request.Stores,
		Items:      request.Items,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// ListCarts returns all saved carts, newest first
func (h *Handler) ListCarts(c *gin.Context) {
	carts, err := h.saved.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"carts": carts, "count": len(carts)})
}

// DeleteCart removes a saved cart by ID
func (h *Handler) DeleteCart(c *gin.Context) {
	if err := h.saved.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondError converts a domain error into a single user-visible message.
// No partial results are rendered alongside an error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTooManyStores):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoDeals):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No recent deals found for this combination. Try broadening your search.",
		})
	case errors.Is(err, domain.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDealFeedFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch deals. Please try again."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
