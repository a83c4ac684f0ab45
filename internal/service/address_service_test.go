package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lumistore/storefront/internal/constants"
	"github.com/lumistore/storefront/internal/models"
	"github.com/lumistore/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAddressServiceTest(t *testing.T) (*gorm.DB, *AddressService) {
	t.Helper()
	dsn := fmt.Sprintf("file:address_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Address{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return db, NewAddressService(repository.NewAddressRepository(db))
}

func baseAddressInput(userID uint) CreateAddressInput {
	return CreateAddressInput{
		UserID:      userID,
		FullName:    "Test User",
		Phone:       "13800000000",
		AddressLine: "100 Main St",
		City:        "Springfield",
		State:       "IL",
		ZipCode:     "62701",
		Country:     "US",
	}
}

func TestCreateAddressFirstBecomesDefault(t *testing.T) {
	_, svc := setupAddressServiceTest(t)

	address, err := svc.CreateAddress(baseAddressInput(1))
	if err != nil {
		t.Fatalf("CreateAddress error: %v", err)
	}
	if address.Type != constants.AddressTypeShipping {
		t.Fatalf("expected SHIPPING default type, got %s", address.Type)
	}
	if !address.IsDefault {
		t.Fatalf("expected first address to become default")
	}

	second, err := svc.CreateAddress(baseAddressInput(1))
	if err != nil {
		t.Fatalf("CreateAddress error: %v", err)
	}
	if second.IsDefault {
		t.Fatalf("expected second address to stay non-default")
	}
}

func TestCreateAddressDefaultSwitchIsExclusive(t *testing.T) {
	db, svc := setupAddressServiceTest(t)

	first, err := svc.CreateAddress(baseAddressInput(1))
	if err != nil {
		t.Fatalf("CreateAddress error: %v", err)
	}

	input := baseAddressInput(1)
	input.IsDefault = true
	second, err := svc.CreateAddress(input)
	if err != nil {
		t.Fatalf("CreateAddress error: %v", err)
	}
	if !second.IsDefault {
		t.Fatalf("expected new address to be default")
	}

	var reloaded models.Address
	if err := db.First(&reloaded, first.ID).Error; err != nil {
		t.Fatalf("load first address failed: %v", err)
	}
	if reloaded.IsDefault {
		t.Fatalf("expected previous default to be cleared")
	}

	var defaults int64
	if err := db.Model(&models.Address{}).
		Where("user_id = ? AND type = ? AND is_default = ?", 1, constants.AddressTypeShipping, true).
		Count(&defaults).Error; err != nil {
		t.Fatalf("count defaults failed: %v", err)
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default address, got %d", defaults)
	}
}

func TestCreateAddressDefaultPerType(t *testing.T) {
	_, svc := setupAddressServiceTest(t)

	shipping, err := svc.CreateAddress(baseAddressInput(1))
	if err != nil {
		t.Fatalf("CreateAddress error: %v", err)
	}

	input := baseAddressInput(1)
	input.Type = "billing"
	billing, err := svc.CreateAddress(input)
	if err != nil {
		t.Fatalf("CreateAddress error: %v", err)
	}
	if billing.Type != constants.AddressTypeBilling {
		t.Fatalf("expected normalized BILLING type, got %s", billing.Type)
	}
	// 两个类型各自独立默认
	if !shipping.IsDefault || !billing.IsDefault {
		t.Fatalf("expected independent defaults per type: shipping=%v billing=%v", shipping.IsDefault, billing.IsDefault)
	}
}

func TestCreateAddressRejectsUnknownType(t *testing.T) {
	_, svc := setupAddressServiceTest(t)

	input := baseAddressInput(1)
	input.Type = "WAREHOUSE"
	_, err := svc.CreateAddress(input)
	if !errors.Is(err, ErrInvalidAddressType) {
		t.Fatalf("expected invalid address type, got: %v", err)
	}
}

func TestGetOwnedAddressRejectsForeignAddress(t *testing.T) {
	_, svc := setupAddressServiceTest(t)

	address, err := svc.CreateAddress(baseAddressInput(1))
	if err != nil {
		t.Fatalf("CreateAddress error: %v", err)
	}
	if _, err := svc.GetOwnedAddress(address.ID, 2); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected address not found for foreign user, got: %v", err)
	}
	owned, err := svc.GetOwnedAddress(address.ID, 1)
	if err != nil {
		t.Fatalf("GetOwnedAddress error: %v", err)
	}
	if owned.ID != address.ID {
		t.Fatalf("unexpected address: %+v", owned)
	}
}

func TestListAddressesDefaultFirst(t *testing.T) {
	_, svc := setupAddressServiceTest(t)

	if _, err := svc.CreateAddress(baseAddressInput(1)); err != nil {
		t.Fatalf("CreateAddress error: %v", err)
	}
	input := baseAddressInput(1)
	input.IsDefault = true
	input.City = "Chicago"
	if _, err := svc.CreateAddress(input); err != nil {
		t.Fatalf("CreateAddress error: %v", err)
	}

	addresses, err := svc.ListAddresses(1)
	if err != nil {
		t.Fatalf("ListAddresses error: %v", err)
	}
	if len(addresses) != 2 {
		t.Fatalf("expected 2 addresses, got %d", len(addresses))
	}
	if !addresses[0].IsDefault {
		t.Fatalf("expected default address listed first")
	}
	if addresses[0].City != "Chicago" {
		t.Fatalf("unexpected first address: %+v", addresses[0])
	}
}
