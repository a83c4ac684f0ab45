package service

import (
	"errors"
	"fmt"
)

// 业务哨兵错误。handler 层按错误映射响应码。
var (
	// 认证 / 用户
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrNotFound           = errors.New("record not found")

	// 商品
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrProductShapeInvalid = errors.New("product price/stock shape invalid")
	ErrVariantRequired     = errors.New("variant required for this product")
	ErrVariantNotFound     = errors.New("variant not found")

	// 购物车
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrEmptyCart        = errors.New("cart is empty")

	// 地址
	ErrAddressNotFound    = errors.New("address not found")
	ErrInvalidAddressType = errors.New("invalid address type")

	// 订单
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderFetchFailed      = errors.New("order fetch failed")
	ErrOrderCreateFailed     = errors.New("order create failed")
	ErrOrderUpdateFailed     = errors.New("order update failed")
	ErrOrderStatusConflict   = errors.New("order status changed concurrently")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrInvalidTransition     = errors.New("invalid order status transition")
	ErrOrderStatusInvalid    = errors.New("unknown order status")
	ErrPaymentStatusInvalid  = errors.New("unknown payment status")
	ErrPlaceOrderTimeout     = errors.New("place order timed out, please retry")

	// 邮件
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// InsufficientStockError 库存不足详情错误。
// errors.Is(err, ErrInsufficientStock) 成立，同时携带行级上下文。
type InsufficientStockError struct {
	ProductID   uint
	VariantID   uint
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	if e.VariantID != 0 {
		return fmt.Sprintf("insufficient stock for %q (variant %d): available %d, requested %d",
			e.ProductName, e.VariantID, e.Available, e.Requested)
	}
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InvalidTransitionError 非法状态迁移详情错误。
// errors.Is(err, ErrInvalidTransition) 成立，同时报出起止状态。
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
