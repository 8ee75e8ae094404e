package api

import (
	"net/http"

	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type ProductRequest struct {
	CategoryID    uuid.UUID       `json:"categoryId" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	StockQuantity *int            `json:"stockQuantity"`
	IsActive      *bool           `json:"isActive"`
}

type UpdateProductRequest struct {
	CategoryID    uuid.UUID       `json:"categoryId"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity *int            `json:"stockQuantity"`
	IsActive      *bool           `json:"isActive"`
}

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	cat, err := h.productService.CreateCategory(c.Request.Context(), getActor(c), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, cat)
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	page, limit := parsePagination(c)
	cats, total, err := h.productService.ListCategories(c.Request.Context(), getActor(c), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, cats, total, page, limit)
}

func (h *ProductHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid category id")
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	cat, err := h.productService.UpdateCategory(c.Request.Context(), getActor(c), id, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, cat)
}

// DeleteCategory godoc
// @Summary Delete a product category
// @Description Fails with 409 while the category still has live products.
// @Tags Shop
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} Response
// @Failure 409 {object} Response "Category not empty"
// @Router /categories/{id} [delete]
func (h *ProductHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := h.productService.DeleteCategory(c.Request.Context(), getActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "category deleted")
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.productService.Create(c.Request.Context(), getActor(c), service.ProductInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, p)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid product id")
		return
	}
	p, err := h.productService.Get(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *ProductHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	activeOnly := c.Query("active") == "true"
	items, total, err := h.productService.List(c.Request.Context(), getActor(c), page, limit, activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, items, total, page, limit)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid product id")
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.productService.Update(c.Request.Context(), getActor(c), id, service.ProductInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := h.productService.Delete(c.Request.Context(), getActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "product deleted")
}
