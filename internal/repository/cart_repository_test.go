package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/lumistore/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Cart{},
		&models.CartItem{},
		&models.Product{},
		&models.ProductVariant{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCartRepository(db), db
}

func TestCartRepositoryItemKeyUniqueness(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	cart, err := repo.CreateForUser(1)
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	first := models.CartItem{CartID: cart.ID, ProductID: 10, VariantID: 0, Quantity: 1}
	if err := repo.CreateItem(&first); err != nil {
		t.Fatalf("create first item failed: %v", err)
	}

	duplicate := models.CartItem{CartID: cart.ID, ProductID: 10, VariantID: 0, Quantity: 2}
	if err := repo.CreateItem(&duplicate); err == nil {
		t.Fatal("duplicate (cart,product,variant) must be rejected")
	}

	// 不同规格可以共存
	variantItem := models.CartItem{CartID: cart.ID, ProductID: 10, VariantID: 7, Quantity: 1}
	if err := repo.CreateItem(&variantItem); err != nil {
		t.Fatalf("create variant item failed: %v", err)
	}
}

func TestCartRepositoryGetItemByKey(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	cart, err := repo.CreateForUser(2)
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	item := models.CartItem{CartID: cart.ID, ProductID: 20, VariantID: 3, Quantity: 2}
	if err := repo.CreateItem(&item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	found, err := repo.GetItemByKey(cart.ID, 20, 3)
	if err != nil {
		t.Fatalf("get item by key failed: %v", err)
	}
	if found == nil || found.ID != item.ID {
		t.Fatalf("expected item %d, got %+v", item.ID, found)
	}

	missing, err := repo.GetItemByKey(cart.ID, 20, 0)
	if err != nil {
		t.Fatalf("get missing item failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing key, got %+v", missing)
	}
}

func TestCartRepositoryUpdateAndClear(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)

	cart, err := repo.CreateForUser(3)
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	item := models.CartItem{CartID: cart.ID, ProductID: 30, Quantity: 1}
	if err := repo.CreateItem(&item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	if err := repo.UpdateItemQuantity(item.ID, 5); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	var reloaded models.CartItem
	if err := db.First(&reloaded, item.ID).Error; err != nil {
		t.Fatalf("reload item failed: %v", err)
	}
	if reloaded.Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", reloaded.Quantity)
	}

	if err := repo.ClearByCart(cart.ID); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart must be empty after clear, got %d items", len(items))
	}
}
