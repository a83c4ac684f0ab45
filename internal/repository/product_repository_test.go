package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/lumistore/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *GormProductVariantRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewProductRepository(db), NewProductVariantRepository(db), db
}

func intPtr(v int) *int { return &v }

func moneyPtr(s string) *models.Money {
	m := models.NewMoneyFromDecimal(decimal.RequireFromString(s))
	return &m
}

func TestProductRepositoryReserveStock(t *testing.T) {
	repo, _, db := setupProductRepositoryTest(t)

	product := models.Product{
		Name:        "Plain Tee",
		HasVariants: false,
		PriceAmount: moneyPtr("19.90"),
		Stock:       intPtr(5),
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	affected, err := repo.ReserveStock(product.ID, 3)
	if err != nil {
		t.Fatalf("reserve stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock == nil || *reloaded.Stock != 2 {
		t.Fatalf("stock want 2 got %v", reloaded.Stock)
	}

	// 余量不足时不得扣减
	affected, err = repo.ReserveStock(product.ID, 3)
	if err != nil {
		t.Fatalf("reserve stock failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("affected want 0 got %d", affected)
	}
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock == nil || *reloaded.Stock != 2 {
		t.Fatalf("stock must stay 2, got %v", reloaded.Stock)
	}
}

func TestProductRepositoryReserveStockSkipsVariantTracked(t *testing.T) {
	repo, _, db := setupProductRepositoryTest(t)

	product := models.Product{
		Name:        "Hoodie",
		HasVariants: true,
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	// 本体库存为 NULL 的多规格商品不可走本体扣减
	affected, err := repo.ReserveStock(product.ID, 1)
	if err != nil {
		t.Fatalf("reserve stock failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("affected want 0 got %d", affected)
	}
}

func TestProductRepositoryRestoreStock(t *testing.T) {
	repo, _, db := setupProductRepositoryTest(t)

	product := models.Product{
		Name:        "Plain Tee",
		HasVariants: false,
		PriceAmount: moneyPtr("19.90"),
		Stock:       intPtr(2),
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	affected, err := repo.RestoreStock(product.ID, 3)
	if err != nil {
		t.Fatalf("restore stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock == nil || *reloaded.Stock != 5 {
		t.Fatalf("stock want 5 got %v", reloaded.Stock)
	}
}

func TestProductVariantRepositoryReserveAndRestoreStock(t *testing.T) {
	_, variantRepo, db := setupProductRepositoryTest(t)

	product := models.Product{Name: "Hoodie", HasVariants: true, IsActive: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant := models.ProductVariant{
		ProductID:   product.ID,
		Size:        "M",
		Color:       "black",
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("49.00")),
		Stock:       4,
		IsActive:    true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}

	affected, err := variantRepo.ReserveStock(variant.ID, 4)
	if err != nil {
		t.Fatalf("reserve variant stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}

	affected, err = variantRepo.ReserveStock(variant.ID, 1)
	if err != nil {
		t.Fatalf("reserve variant stock failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("oversell must be rejected, affected=%d", affected)
	}

	affected, err = variantRepo.RestoreStock(variant.ID, 4)
	if err != nil {
		t.Fatalf("restore variant stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}

	var reloaded models.ProductVariant
	if err := db.First(&reloaded, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloaded.Stock != 4 {
		t.Fatalf("variant stock want 4 got %d", reloaded.Stock)
	}
}

func TestProductRepositoryListOnlyActive(t *testing.T) {
	repo, _, db := setupProductRepositoryTest(t)

	active := models.Product{Name: "Active", PriceAmount: moneyPtr("10.00"), Stock: intPtr(1), IsActive: true}
	hidden := models.Product{Name: "Hidden", PriceAmount: moneyPtr("10.00"), Stock: intPtr(1), IsActive: false}
	if err := db.Create(&active).Error; err != nil {
		t.Fatalf("create active product failed: %v", err)
	}
	if err := db.Create(&hidden).Error; err != nil {
		t.Fatalf("create hidden product failed: %v", err)
	}

	rows, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 20, OnlyActive: true})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("total want 1 got %d", total)
	}
	if len(rows) != 1 || rows[0].Name != "Active" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
