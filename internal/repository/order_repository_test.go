package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/lumistore/storefront/internal/constants"
	"github.com/lumistore/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func createRepoTestOrder(t *testing.T, repo *GormOrderRepository, userID uint, orderNo, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:           orderNo,
		UserID:            userID,
		ShippingAddressID: 1,
		Status:            status,
		PaymentStatus:     constants.PaymentStatusPending,
		PaymentMethod:     constants.PaymentMethodCOD,
	}
	items := []models.OrderItem{
		{ProductID: 1, ProductName: "Item A", Quantity: 2},
		{ProductID: 2, ProductName: "Item B", Quantity: 1},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderRepositoryCreateLinksItems(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)

	order := createRepoTestOrder(t, repo, 1, "SF-REPO-1", constants.OrderStatusPending)

	items, err := repo.ListItems(order.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items want 2 got %d", len(items))
	}
	for _, item := range items {
		if item.OrderID != order.ID {
			t.Fatalf("item %d not linked to order %d", item.ID, order.ID)
		}
	}
}

func TestOrderRepositoryGetByIDAndUserScopesOwnership(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)

	order := createRepoTestOrder(t, repo, 1, "SF-REPO-2", constants.OrderStatusPending)

	found, err := repo.GetByIDAndUser(order.ID, 1)
	if err != nil {
		t.Fatalf("get own order failed: %v", err)
	}
	if found == nil || found.ID != order.ID {
		t.Fatalf("expected order %d, got %+v", order.ID, found)
	}
	if len(found.Items) != 2 {
		t.Fatalf("order items must be preloaded, got %d", len(found.Items))
	}

	foreign, err := repo.GetByIDAndUser(order.ID, 2)
	if err != nil {
		t.Fatalf("get foreign order errored: %v", err)
	}
	if foreign != nil {
		t.Fatalf("foreign user must not see order, got %+v", foreign)
	}
}

func TestOrderRepositoryListAdminFilters(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)

	createRepoTestOrder(t, repo, 1, "SF-REPO-3A", constants.OrderStatusPending)
	createRepoTestOrder(t, repo, 1, "SF-REPO-3B", constants.OrderStatusShipped)
	createRepoTestOrder(t, repo, 2, "SF-REPO-3C", constants.OrderStatusShipped)

	shipped, total, err := repo.ListAdmin(OrderListFilter{Status: constants.OrderStatusShipped})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 2 || len(shipped) != 2 {
		t.Fatalf("shipped orders want 2, got total=%d len=%d", total, len(shipped))
	}

	byUser, total, err := repo.ListAdmin(OrderListFilter{UserID: 2})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 1 || len(byUser) != 1 || byUser[0].OrderNo != "SF-REPO-3C" {
		t.Fatalf("user 2 orders want SF-REPO-3C, got total=%d %+v", total, byUser)
	}

	byNo, total, err := repo.ListAdmin(OrderListFilter{OrderNo: "SF-REPO-3A"})
	if err != nil {
		t.Fatalf("list by order_no failed: %v", err)
	}
	if total != 1 || len(byNo) != 1 || byNo[0].Status != constants.OrderStatusPending {
		t.Fatalf("order_no filter mismatch, got total=%d %+v", total, byNo)
	}
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	order := createRepoTestOrder(t, repo, 1, "SF-REPO-4", constants.OrderStatusPending)

	now := time.Now()
	affected, err := repo.UpdateStatus(order.ID, constants.OrderStatusPending, constants.OrderStatusCancelled, map[string]interface{}{
		"canceled_at": now,
	})
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected rows want 1, got %d", affected)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want CANCELLED got %s", reloaded.Status)
	}
	if reloaded.CanceledAt == nil {
		t.Fatal("canceled_at must be set")
	}
}

func TestOrderRepositoryUpdateStatusGuardsCurrentStatus(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	order := createRepoTestOrder(t, repo, 1, "SF-REPO-5", constants.OrderStatusShipped)

	// 前置状态不匹配时不写入
	affected, err := repo.UpdateStatus(order.ID, constants.OrderStatusPending, constants.OrderStatusCancelled, nil)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("affected rows want 0, got %d", affected)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusShipped {
		t.Fatalf("status must stay SHIPPED, got %s", reloaded.Status)
	}
}

func TestOrderRepositoryResolveReceiverEmail(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	user := models.User{Email: "buyer@example.com", PasswordHash: "x", Role: "customer", Status: "active"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := createRepoTestOrder(t, repo, user.ID, "SF-REPO-5", constants.OrderStatusPending)

	email, err := repo.ResolveReceiverEmailByOrderID(order.ID)
	if err != nil {
		t.Fatalf("resolve receiver email failed: %v", err)
	}
	if email != "buyer@example.com" {
		t.Fatalf("email want buyer@example.com got %s", email)
	}

	missing, err := repo.ResolveReceiverEmailByOrderID(99999)
	if err != nil {
		t.Fatalf("resolve missing order errored: %v", err)
	}
	if missing != "" {
		t.Fatalf("missing order must resolve to empty email, got %s", missing)
	}
}
