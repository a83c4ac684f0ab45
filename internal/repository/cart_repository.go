package repository

import (
	"errors"

	"github.com/lumistore/storefront/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	CreateForUser(userID uint) (*models.Cart, error)
	ListItems(cartID uint) ([]models.CartItem, error)
	GetItem(itemID uint) (*models.CartItem, error)
	GetItemByKey(cartID, productID, variantID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	DeleteItem(itemID uint) error
	ClearByCart(cartID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser 获取用户购物车
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, errors.New("invalid user id")
	}
	var cart models.Cart
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// CreateForUser 为用户创建购物车
func (r *GormCartRepository) CreateForUser(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, errors.New("invalid user id")
	}
	cart := models.Cart{UserID: userID}
	if err := r.db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListItems 获取购物车项（含商品与规格）
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	if cartID == 0 {
		return nil, errors.New("invalid cart id")
	}
	var items []models.CartItem
	if err := r.db.Preload("Product").Preload("Variant").
		Where("cart_id = ?", cartID).
		Order("updated_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 根据 ID 获取购物车项
func (r *GormCartRepository) GetItem(itemID uint) (*models.CartItem, error) {
	if itemID == 0 {
		return nil, errors.New("invalid cart item id")
	}
	var item models.CartItem
	if err := r.db.Preload("Product").Preload("Variant").First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemByKey 按 (购物车, 商品, 规格) 获取购物车项
func (r *GormCartRepository) GetItemByKey(cartID, productID, variantID uint) (*models.CartItem, error) {
	if cartID == 0 || productID == 0 {
		return nil, errors.New("invalid cart item key")
	}
	var item models.CartItem
	if err := r.db.
		Where("cart_id = ? AND product_id = ? AND variant_id = ?", cartID, productID, variantID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	if item == nil {
		return errors.New("cart item is nil")
	}
	return r.db.Create(item).Error
}

// UpdateItemQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	if itemID == 0 || quantity < 1 {
		return errors.New("invalid cart item update params")
	}
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity).Error
}

// DeleteItem 删除购物车项。
// 物理删除：同 (购物车, 商品, 规格) 的唯一键要允许再次加入。
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	if itemID == 0 {
		return errors.New("invalid cart item id")
	}
	return r.db.Unscoped().Delete(&models.CartItem{}, itemID).Error
}

// ClearByCart 清空购物车，物理删除
func (r *GormCartRepository) ClearByCart(cartID uint) error {
	if cartID == 0 {
		return errors.New("invalid cart id")
	}
	return r.db.Unscoped().Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
