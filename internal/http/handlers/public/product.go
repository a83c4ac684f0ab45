package public

import (
	"errors"
	"strconv"

	handlershared "github.com/lumistore/storefront/internal/http/handlers/shared"
	"github.com/lumistore/storefront/internal/http/response"
	"github.com/lumistore/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 店面商品列表（仅上架商品）
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	products, total, err := h.ProductService.ListProducts(page, pageSize, true)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load products", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 店面商品详情（仅上架商品）
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}

	product, err := h.ProductService.GetProduct(uint(id), true)
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
