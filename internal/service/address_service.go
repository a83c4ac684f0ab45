package service

import (
	"strings"

	"github.com/lumistore/storefront/internal/constants"
	"github.com/lumistore/storefront/internal/models"
	"github.com/lumistore/storefront/internal/repository"

	"gorm.io/gorm"
)

// AddressService 地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// ListAddresses 获取用户地址列表
func (s *AddressService) ListAddresses(userID uint) ([]models.Address, error) {
	return s.addressRepo.ListByUser(userID)
}

// GetOwnedAddress 获取属于用户的地址
func (s *AddressService) GetOwnedAddress(id, userID uint) (*models.Address, error) {
	address, err := s.addressRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

// CreateAddressInput 创建地址输入
type CreateAddressInput struct {
	UserID      uint
	FullName    string
	Phone       string
	AddressLine string
	City        string
	State       string
	ZipCode     string
	Country     string
	Type        string
	IsDefault   bool
}

// CreateAddress 创建地址。
// 每个 (用户, 类型) 至多一个默认地址：该类型首个地址自动设默认，
// 指定默认时清除同类型旧默认，二者在同一事务内完成。
func (s *AddressService) CreateAddress(input CreateAddressInput) (*models.Address, error) {
	addressType := strings.ToUpper(strings.TrimSpace(input.Type))
	if addressType == "" {
		addressType = constants.AddressTypeShipping
	}
	if addressType != constants.AddressTypeShipping && addressType != constants.AddressTypeBilling {
		return nil, ErrInvalidAddressType
	}

	count, err := s.addressRepo.CountByUserAndType(input.UserID, addressType)
	if err != nil {
		return nil, err
	}
	isDefault := input.IsDefault || count == 0

	address := &models.Address{
		UserID:      input.UserID,
		FullName:    strings.TrimSpace(input.FullName),
		Phone:       strings.TrimSpace(input.Phone),
		AddressLine: strings.TrimSpace(input.AddressLine),
		City:        strings.TrimSpace(input.City),
		State:       strings.TrimSpace(input.State),
		ZipCode:     strings.TrimSpace(input.ZipCode),
		Country:     strings.TrimSpace(input.Country),
		Type:        addressType,
		IsDefault:   isDefault,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if isDefault {
			if err := repo.ClearDefault(input.UserID, addressType); err != nil {
				return err
			}
		}
		return repo.Create(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}
