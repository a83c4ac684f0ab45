package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/lumistore/storefront/internal/http/handlers/shared"
	"github.com/lumistore/storefront/internal/http/response"
	"github.com/lumistore/storefront/internal/models"
	"github.com/lumistore/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// VariantRequest 规格请求
type VariantRequest struct {
	Size  string       `json:"size"`
	Color string       `json:"color"`
	Price models.Money `json:"price"`
	Stock int          `json:"stock"`
}

// ProductRequest 商品创建/更新请求。
// 本体 price/stock 与 variants 互斥：二者必须恰好提供其一。
type ProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Images      []string         `json:"images"`
	IsActive    bool             `json:"is_active"`
	Price       *models.Money    `json:"price"`
	Stock       *int             `json:"stock"`
	Variants    []VariantRequest `json:"variants"`
}

func (r ProductRequest) toServiceInput() service.ProductInput {
	variants := make([]service.VariantInput, 0, len(r.Variants))
	for _, v := range r.Variants {
		variants = append(variants, service.VariantInput{
			Size:  v.Size,
			Color: v.Color,
			Price: v.Price,
			Stock: v.Stock,
		})
	}
	return service.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Images:      r.Images,
		IsActive:    r.IsActive,
		Price:       r.Price,
		Stock:       r.Stock,
		Variants:    variants,
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

// ListProducts 管理端商品列表（含未上架）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	products, total, err := h.ProductService.ListProducts(page, pageSize, false)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load products", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 管理端商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetProduct(id, false)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load product", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	product, err := h.ProductService.CreateProduct(req.toServiceInput())
	if err != nil {
		if errors.Is(err, service.ErrProductShapeInvalid) {
			respondError(c, response.CodeBadRequest, "product must have either own price and stock or variants", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to create product", err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	product, err := h.ProductService.UpdateProduct(id, req.toServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "product not found", nil)
		case errors.Is(err, service.ErrProductShapeInvalid):
			respondError(c, response.CodeBadRequest, "product must have either own price and stock or variants", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update product", err)
		}
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete product", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
