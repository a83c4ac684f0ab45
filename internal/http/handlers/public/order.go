package public

import (
	"errors"
	"strconv"

	handlershared "github.com/lumistore/storefront/internal/http/handlers/shared"
	"github.com/lumistore/storefront/internal/http/response"
	"github.com/lumistore/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	ShippingAddressID uint   `json:"shipping_address_id" binding:"required"`
	PaymentMethod     string `json:"payment_method"`
}

// PlaceOrder 购物车结算下单
func (h *Handler) PlaceOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request payload", err)
		return
	}

	order, err := h.OrderService.PlaceOrder(service.PlaceOrderInput{
		UserID:            uid,
		ShippingAddressID: req.ShippingAddressID,
		PaymentMethod:     req.PaymentMethod,
	})
	if err != nil {
		var stockErr *service.InsufficientStockError
		if errors.As(err, &stockErr) {
			response.ErrorWithData(c, response.CodeConflict, "insufficient stock", gin.H{
				"product_id": stockErr.ProductID,
				"variant_id": stockErr.VariantID,
				"product":    stockErr.ProductName,
				"available":  stockErr.Available,
				"requested":  stockErr.Requested,
			})
			return
		}
		respondWithMappedError(c, err, placeOrderErrorRules, response.CodeInternal, "failed to place order")
		return
	}
	response.Success(c, order)
}

// ListMyOrders 我的订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	orders, total, err := h.OrderService.ListMyOrders(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load orders", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetMyOrder 我的订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetOrderForUser(uint(orderID), uid)
	if err != nil {
		respondWithMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "failed to load order")
		return
	}
	response.Success(c, order)
}

// CancelMyOrder 取消我的订单（仅 PENDING）
func (h *Handler) CancelMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, cancelErr := h.OrderService.CancelOrder(uint(orderID), uid)
	if cancelErr != nil {
		var transitionErr *service.InvalidTransitionError
		if errors.As(cancelErr, &transitionErr) {
			response.ErrorWithData(c, response.CodeConflict, "order can no longer be cancelled", gin.H{
				"from": transitionErr.From,
				"to":   transitionErr.To,
			})
			return
		}
		respondWithMappedError(c, cancelErr, cancelOrderErrorRules, response.CodeInternal, "failed to cancel order")
		return
	}
	response.Success(c, order)
}
