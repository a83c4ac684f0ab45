package service

import (
	"strings"

	"github.com/lumistore/storefront/internal/queue"
	"github.com/lumistore/storefront/internal/repository"
)

// enqueueOrderStatusEmailTaskIfEligible 在队列可用且收件人邮箱存在时
// 入队状态通知邮件，返回是否实际入队。
func enqueueOrderStatusEmailTaskIfEligible(orderRepo repository.OrderRepository, client *queue.Client, orderID uint, status string) (bool, error) {
	if client == nil || !client.Enabled() {
		return false, nil
	}
	email, err := orderRepo.ResolveReceiverEmailByOrderID(orderID)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(email) == "" {
		return false, nil
	}
	if err := client.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		return false, err
	}
	return true, nil
}
