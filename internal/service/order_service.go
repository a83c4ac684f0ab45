package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lumistore/storefront/internal/constants"
	"github.com/lumistore/storefront/internal/logger"
	"github.com/lumistore/storefront/internal/models"
	"github.com/lumistore/storefront/internal/queue"
	"github.com/lumistore/storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo           repository.OrderRepository
	productRepo         repository.ProductRepository
	variantRepo         repository.ProductVariantRepository
	cartRepo            repository.CartRepository
	addressRepo         repository.AddressRepository
	queueClient         *queue.Client
	placeTimeoutSeconds int
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository, cartRepo repository.CartRepository, addressRepo repository.AddressRepository, queueClient *queue.Client, placeTimeoutSeconds int) *OrderService {
	return &OrderService{
		orderRepo:           orderRepo,
		productRepo:         productRepo,
		variantRepo:         variantRepo,
		cartRepo:            cartRepo,
		addressRepo:         addressRepo,
		queueClient:         queueClient,
		placeTimeoutSeconds: placeTimeoutSeconds,
	}
}

// PlaceOrderInput 下单输入
type PlaceOrderInput struct {
	UserID            uint
	ShippingAddressID uint
	PaymentMethod     string
}

func (s *OrderService) resolvePlaceTimeout() time.Duration {
	seconds := s.placeTimeoutSeconds
	if seconds <= 0 {
		seconds = 10
	}
	return time.Duration(seconds) * time.Second
}

// PlaceOrder 购物车结算下单。
// 单个事务内完成：逐行条件扣减库存、写入订单快照、清空购物车。
// 任一行库存不足则整体回滚；超过下单时限返回可重试的超时错误。
func (s *OrderService) PlaceOrder(input PlaceOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrOrderCreateFailed
	}

	address, err := s.addressRepo.GetByIDAndUser(input.ShippingAddressID, input.UserID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	cart, err := s.cartRepo.GetByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrEmptyCart
	}
	cartItems, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	paymentMethod := strings.ToUpper(strings.TrimSpace(input.PaymentMethod))
	if paymentMethod == "" {
		paymentMethod = constants.PaymentMethodCOD
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:           generateOrderNo(),
		UserID:            input.UserID,
		ShippingAddressID: address.ID,
		Status:            constants.OrderStatusPending,
		PaymentStatus:     constants.PaymentStatusPending,
		PaymentMethod:     paymentMethod,
		Subtotal:          models.ZeroMoney(),
		Tax:               models.ZeroMoney(),
		ShippingCost:      models.ZeroMoney(),
		TotalAmount:       models.ZeroMoney(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.resolvePlaceTimeout())
	defer cancel()

	err = models.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		subtotal := models.ZeroMoney()
		orderItems := make([]models.OrderItem, 0, len(cartItems))

		for i := range cartItems {
			cartItem := &cartItems[i]
			product, err := productRepo.GetByID(cartItem.ProductID, true)
			if err != nil {
				return err
			}
			if product == nil {
				return ErrProductNotAvailable
			}
			var variant *models.ProductVariant
			if cartItem.VariantID != 0 {
				variant, err = variantRepo.GetByID(cartItem.VariantID)
				if err != nil {
					return err
				}
				if variant == nil {
					return ErrVariantNotFound
				}
			}

			line, err := resolveOrderLine(product, variant)
			if err != nil {
				return err
			}

			affected, err := s.reserveLineStock(productRepo, variantRepo, cartItem.ProductID, cartItem.VariantID, cartItem.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return &InsufficientStockError{
					ProductID:   cartItem.ProductID,
					VariantID:   cartItem.VariantID,
					ProductName: product.Name,
					Available:   line.Available,
					Requested:   cartItem.Quantity,
				}
			}

			snapshot := models.OrderItem{
				ProductID:   cartItem.ProductID,
				VariantID:   cartItem.VariantID,
				ProductName: product.Name,
				Quantity:    cartItem.Quantity,
				UnitPrice:   line.UnitPrice,
				TotalPrice:  line.UnitPrice.MulInt(cartItem.Quantity),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if variant != nil {
				snapshot.Size = variant.Size
				snapshot.Color = variant.Color
			}
			orderItems = append(orderItems, snapshot)
			subtotal = subtotal.AddMoney(snapshot.TotalPrice)
		}

		order.Subtotal = subtotal
		order.TotalAmount = subtotal
		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}
		return cartRepo.ClearByCart(cart.ID)
	})
	if err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			return nil, stockErr
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.Warnw("order_place_timeout",
				"user_id", input.UserID,
				"order_no", order.OrderNo,
				"error", err,
			)
			return nil, ErrPlaceOrderTimeout
		}
		if isLineResolutionError(err) {
			return nil, err
		}
		logger.Errorw("order_place_failed",
			"user_id", input.UserID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil, ErrOrderCreateFailed
	}

	s.enqueueStatusEmail(order.ID, order.Status)

	full, err := s.orderRepo.GetByID(order.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return order, nil
}

func isLineResolutionError(err error) bool {
	return errors.Is(err, ErrProductNotAvailable) ||
		errors.Is(err, ErrProductShapeInvalid) ||
		errors.Is(err, ErrVariantRequired) ||
		errors.Is(err, ErrVariantNotFound)
}

// reserveLineStock 条件扣减订单行对应的库存来源，返回受影响行数。
func (s *OrderService) reserveLineStock(productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository, productID, variantID uint, quantity int) (int64, error) {
	if variantID != 0 {
		return variantRepo.ReserveStock(variantID, quantity)
	}
	return productRepo.ReserveStock(productID, quantity)
}

// restoreStockByItems 按订单项快照归还库存。
// 库存来源可能已被删除或改为规格计库存，归还 0 行时告警而不阻断取消。
func restoreStockByItems(productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository, items []models.OrderItem) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		var (
			affected int64
			err      error
		)
		if item.VariantID != 0 {
			affected, err = variantRepo.RestoreStock(item.VariantID, item.Quantity)
		} else {
			affected, err = productRepo.RestoreStock(item.ProductID, item.Quantity)
		}
		if err != nil {
			return err
		}
		if affected == 0 {
			logger.Warnw("order_restore_stock_noop",
				"order_id", item.OrderID,
				"product_id", item.ProductID,
				"variant_id", item.VariantID,
				"quantity", item.Quantity,
			)
		}
	}
	return nil
}

// cancelOrder 取消订单：状态写入与库存归还在同一事务内完成。
// 状态写入以读到的状态为前置条件，被并发迁移抢先时整体回滚。
func (s *OrderService) cancelOrder(order *models.Order) error {
	now := time.Now()
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)

		updates := map[string]interface{}{
			"canceled_at": now,
			"updated_at":  now,
		}
		affected, err := orderRepo.UpdateStatus(order.ID, order.Status, constants.OrderStatusCancelled, updates)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderStatusConflict
		}
		return restoreStockByItems(productRepo, variantRepo, order.Items)
	})
	if err != nil {
		return err
	}
	order.Status = constants.OrderStatusCancelled
	order.CanceledAt = &now
	order.UpdatedAt = now
	return nil
}

// CancelOrder 用户取消自己的订单。仅 PENDING 可取消。
func (s *OrderService) CancelOrder(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, &InvalidTransitionError{From: order.Status, To: constants.OrderStatusCancelled}
	}
	if err := s.cancelOrder(order); err != nil {
		if errors.Is(err, ErrOrderStatusConflict) {
			return nil, err
		}
		return nil, ErrOrderUpdateFailed
	}
	s.enqueueStatusEmail(order.ID, constants.OrderStatusCancelled)
	return order, nil
}

// AdminUpdateOrderStatusInput 管理端更新订单状态输入。空字段表示不变更。
type AdminUpdateOrderStatusInput struct {
	Status        string
	PaymentStatus string
}

// AdminUpdateOrderStatus 管理端更新订单状态。
// 订单状态受状态机约束，迁移到 CANCELLED 时原子归还库存；
// 支付状态是独立维度，仅校验取值合法。
func (s *OrderService) AdminUpdateOrderStatus(orderID uint, input AdminUpdateOrderStatusInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	targetStatus := strings.TrimSpace(input.Status)
	targetPayment := strings.TrimSpace(input.PaymentStatus)
	if targetStatus == "" && targetPayment == "" {
		return order, nil
	}
	if targetPayment != "" && !IsKnownPaymentStatus(targetPayment) {
		return nil, ErrPaymentStatusInvalid
	}
	if targetStatus != "" {
		if err := ValidateTransition(order.Status, targetStatus); err != nil {
			return nil, err
		}
	}

	// ValidateTransition 已拒绝同状态写入，走到这里即为真实迁移
	statusChanged := targetStatus != ""
	now := time.Now()

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)

		updates := map[string]interface{}{
			"updated_at": now,
		}
		if targetPayment != "" {
			updates["payment_status"] = targetPayment
		}

		nextStatus := order.Status
		if statusChanged {
			nextStatus = targetStatus
			if targetStatus == constants.OrderStatusCancelled {
				updates["canceled_at"] = now
				if err := restoreStockByItems(s.productRepo.WithTx(tx), s.variantRepo.WithTx(tx), order.Items); err != nil {
					return err
				}
			}
		}
		affected, err := orderRepo.UpdateStatus(order.ID, order.Status, nextStatus, updates)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderStatusConflict
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOrderStatusConflict) {
			return nil, err
		}
		return nil, ErrOrderUpdateFailed
	}

	if statusChanged {
		s.enqueueStatusEmail(order.ID, targetStatus)
	}

	updated, err := s.orderRepo.GetByID(order.ID)
	if err != nil || updated == nil {
		return nil, ErrOrderFetchFailed
	}
	return updated, nil
}

// GetOrderForUser 获取用户自己的订单详情
func (s *OrderService) GetOrderForUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrder 管理端获取订单详情
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListMyOrders 获取用户订单列表（新单在前）
func (s *OrderService) ListMyOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

// AdminListOrders 管理端订单列表
func (s *OrderService) AdminListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// enqueueStatusEmail 尽力而为地推送状态邮件任务，失败仅记日志。
func (s *OrderService) enqueueStatusEmail(orderID uint, status string) {
	if s.queueClient == nil {
		return
	}
	if _, err := enqueueOrderStatusEmailTaskIfEligible(s.orderRepo, s.queueClient, orderID, status); err != nil {
		logger.Warnw("order_enqueue_status_email_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
}

func generateOrderNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("SF%s%s", time.Now().Format("20060102150405"), suffix)
}
