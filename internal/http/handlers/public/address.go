package public

import (
	"github.com/lumistore/storefront/internal/http/response"
	"github.com/lumistore/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateAddressRequest 创建地址请求
type CreateAddressRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Country     string `json:"country" binding:"required"`
	Type        string `json:"type"`
	IsDefault   bool   `json:"is_default"`
}

// ListAddresses 获取我的地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addresses, err := h.AddressService.ListAddresses(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load addresses", err)
		return
	}
	response.Success(c, gin.H{"addresses": addresses})
}

// CreateAddress 创建地址
func (h *Handler) CreateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	address, err := h.AddressService.CreateAddress(service.CreateAddressInput{
		UserID:      uid,
		FullName:    req.FullName,
		Phone:       req.Phone,
		AddressLine: req.AddressLine,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Country:     req.Country,
		Type:        req.Type,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "failed to create address")
		return
	}
	response.Success(c, address)
}
