// Package handler provides the HTTP handlers for the product catalog.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopping_backend/internal/feature/product/domain/entity"
	"shopping_backend/internal/feature/product/transport/http/dto"
	"shopping_backend/internal/feature/product/usecase"
	jwtmw "shopping_backend/internal/platform/jwt"
)

// ProductUsecase is the catalog API the handler depends on.
type ProductUsecase interface {
	Create(ctx context.Context, f usecase.ProductFields) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Get(ctx context.Context, id uint) (*entity.Product, error)
	Update(ctx context.Context, id uint, f usecase.ProductFields) (*entity.Product, error)
	Delete(ctx context.Context, id uint) error
}

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	uc ProductUsecase
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(uc ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List handles GET /product/getAll.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list products", err)
		return
	}
	out := make([]dto.ProductRes, 0, len(products))
	for _, p := range products {
		out = append(out, dto.FromEntity(p))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /product/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get product", err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*p))
}

// Create handles POST /product/add. Requires the auth gate.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p, err := h.uc.Create(c.Request.Context(), toFields(req))
	if err != nil {
		h.fail(c, "create product", err)
		return
	}
	slog.Info("product created", "id", p.ID, "actor", actor(c))
	c.JSON(http.StatusOK, dto.FromEntity(*p))
}

// Update handles PUT /product/update/:id. Requires the auth gate.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p, err := h.uc.Update(c.Request.Context(), id, toFields(req))
	if err != nil {
		h.fail(c, "update product", err)
		return
	}
	slog.Info("product updated", "id", p.ID, "actor", actor(c))
	c.JSON(http.StatusOK, dto.FromEntity(*p))
}

// Delete handles DELETE /product/delete/:id. Requires the auth gate.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete product", err)
		return
	}
	slog.Info("product deleted", "id", id, "actor", actor(c))
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, usecase.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": usecase.ErrProductNotFound.Error()})
		return
	}
	slog.Error(op+" failed", "error", err, "actor", actor(c))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return uint(id), true
}

func toFields(req dto.ProductReq) usecase.ProductFields {
	return usecase.ProductFields{
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		Completed: req.Completed,
	}
}

// actor is the authenticated username, or "" on public routes.
func actor(c *gin.Context) string {
	if id, ok := jwtmw.IdentityFromContext(c.Request.Context()); ok {
		return id.Subject
	}
	return ""
}
