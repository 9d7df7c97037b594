package handlers

import (
	"errors"
	"net/http"

	"github.com/jenny-yujl/marketingTrain/internal/interfaces"
	"github.com/jenny-yujl/marketingTrain/internal/models"
	"github.com/jenny-yujl/marketingTrain/internal/schema"
)

type ProductHandler struct {
	*BaseHandler
	repo interfaces.ProductStore
}

func NewProductHandler(base *BaseHandler, repo interfaces.ProductStore) *ProductHandler {
	return &ProductHandler{BaseHandler: base, repo: repo}
}

// ListProducts handles GET /api/products
// @Tags Products
// @Summary List products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} ErrorResponse
// @Router /api/products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListProducts(r.Context())
	if err != nil {
		h.serverError(w, r, "list_products_failed", "Failed to fetch products", err)
		return
	}
	if products == nil {
		products = []*models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}
// @Tags Products
// @Summary Get product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "Product")
	if !ok {
		return
	}

	product, err := h.repo.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "Product not found")
			return
		}
		h.serverError(w, r, "get_product_failed", "Failed to fetch product", err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /api/products
// @Tags Products
// @Summary Create product
// @Accept json
// @Produce json
// @Param product body models.ProductDraft true "Product"
// @Success 201 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	draft, err := schema.DecodeProduct(body)
	if err != nil {
		h.decodeFailed(w, "Invalid product data", err)
		return
	}

	product, err := h.repo.CreateProduct(r.Context(), draft)
	if err != nil {
		h.serverError(w, r, "create_product_failed", "Failed to create product", err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}
