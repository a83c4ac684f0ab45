package service

import (
	"strings"

	"github.com/lumistore/storefront/internal/constants"
)

// allowedTransitions 订单状态迁移表。
// DELIVERED 与 CANCELLED 为终态，不允许再迁出。
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCancelled: {},
}

// IsKnownOrderStatus 是否为已知订单状态
func IsKnownOrderStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

// IsTerminalOrderStatus 是否为终态
func IsTerminalOrderStatus(status string) bool {
	nexts, ok := allowedTransitions[status]
	return ok && len(nexts) == 0
}

// CanTransition 判定状态迁移是否合法。
// 迁移表不含自环，同状态写入同样视为非法迁移。
func CanTransition(from, to string) bool {
	nexts, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return nexts[to]
}

// ValidateTransition 校验状态迁移，非法时返回携带起止状态的详情错误
func ValidateTransition(from, to string) error {
	if !IsKnownOrderStatus(to) {
		return ErrOrderStatusInvalid
	}
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// IsKnownPaymentStatus 是否为已知支付状态。支付状态是独立维度，无状态机。
func IsKnownPaymentStatus(status string) bool {
	switch strings.TrimSpace(status) {
	case constants.PaymentStatusPending,
		constants.PaymentStatusPaid,
		constants.PaymentStatusFailed,
		constants.PaymentStatusRefunded:
		return true
	default:
		return false
	}
}
