package repository

import (
	"errors"

	"github.com/lumistore/storefront/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 地址数据访问接口
type AddressRepository interface {
	ListByUser(userID uint) ([]models.Address, error)
	GetByIDAndUser(id, userID uint) (*models.Address, error)
	CountByUserAndType(userID uint, addressType string) (int64, error)
	ClearDefault(userID uint, addressType string) error
	Create(address *models.Address) error
	WithTx(tx *gorm.DB) AddressRepository
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAddressRepository) WithTx(tx *gorm.DB) AddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// ListByUser 获取用户地址列表（默认地址在前）
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.Address, error) {
	if userID == 0 {
		return nil, errors.New("invalid user id")
	}
	var addresses []models.Address
	if err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC, id DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetByIDAndUser 获取属于用户的地址
func (r *GormAddressRepository) GetByIDAndUser(id, userID uint) (*models.Address, error) {
	if id == 0 || userID == 0 {
		return nil, errors.New("invalid address query params")
	}
	var address models.Address
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// CountByUserAndType 统计用户某类型地址数量
func (r *GormAddressRepository) CountByUserAndType(userID uint, addressType string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Address{}).
		Where("user_id = ? AND type = ?", userID, addressType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ClearDefault 清除用户某类型的默认标记
func (r *GormAddressRepository) ClearDefault(userID uint, addressType string) error {
	if userID == 0 {
		return errors.New("invalid user id")
	}
	return r.db.Model(&models.Address{}).
		Where("user_id = ? AND type = ? AND is_default = ?", userID, addressType, true).
		Update("is_default", false).Error
}

// Create 创建地址
func (r *GormAddressRepository) Create(address *models.Address) error {
	if address == nil {
		return errors.New("address is nil")
	}
	return r.db.Create(address).Error
}
