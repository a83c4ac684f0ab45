package service

import (
	"errors"
	"testing"

	"github.com/lumistore/storefront/internal/constants"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusProcessing, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusShipped, false},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped, true},
		{constants.OrderStatusProcessing, constants.OrderStatusCancelled, true},
		{constants.OrderStatusProcessing, constants.OrderStatusDelivered, false},
		{constants.OrderStatusProcessing, constants.OrderStatusPending, false},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled, false},
		{constants.OrderStatusShipped, constants.OrderStatusPending, false},
		{constants.OrderStatusDelivered, constants.OrderStatusShipped, false},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusCancelled, constants.OrderStatusPending, false},
		{constants.OrderStatusCancelled, constants.OrderStatusProcessing, false},
		// 迁移表不含自环，同状态写入不合法
		{constants.OrderStatusPending, constants.OrderStatusPending, false},
		{constants.OrderStatusProcessing, constants.OrderStatusProcessing, false},
		{constants.OrderStatusDelivered, constants.OrderStatusDelivered, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.allowed {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.allowed)
		}
	}
}

func TestValidateTransitionUnknownTarget(t *testing.T) {
	err := ValidateTransition(constants.OrderStatusPending, "ARCHIVED")
	if !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid order status error, got: %v", err)
	}
}

func TestValidateTransitionIllegal(t *testing.T) {
	err := ValidateTransition(constants.OrderStatusDelivered, constants.OrderStatusCancelled)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition error, got: %v", err)
	}
	var detail *InvalidTransitionError
	if !errors.As(err, &detail) {
		t.Fatalf("expected transition detail, got: %v", err)
	}
	if detail.From != constants.OrderStatusDelivered || detail.To != constants.OrderStatusCancelled {
		t.Fatalf("unexpected transition detail: %+v", detail)
	}
}

func TestIsTerminalOrderStatus(t *testing.T) {
	if !IsTerminalOrderStatus(constants.OrderStatusDelivered) {
		t.Fatalf("expected DELIVERED to be terminal")
	}
	if !IsTerminalOrderStatus(constants.OrderStatusCancelled) {
		t.Fatalf("expected CANCELLED to be terminal")
	}
	if IsTerminalOrderStatus(constants.OrderStatusShipped) {
		t.Fatalf("expected SHIPPED to be non-terminal")
	}
	if IsTerminalOrderStatus("ARCHIVED") {
		t.Fatalf("expected unknown status to be non-terminal")
	}
}

func TestIsKnownPaymentStatus(t *testing.T) {
	for _, status := range []string{
		constants.PaymentStatusPending,
		constants.PaymentStatusPaid,
		constants.PaymentStatusFailed,
		constants.PaymentStatusRefunded,
	} {
		if !IsKnownPaymentStatus(status) {
			t.Fatalf("expected %s to be a known payment status", status)
		}
	}
	if IsKnownPaymentStatus("SETTLED") {
		t.Fatalf("expected SETTLED to be rejected")
	}
}
