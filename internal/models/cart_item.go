package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项。VariantID 为 0 表示无规格商品。
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                                  // 主键
	CartID    uint           `gorm:"not null;uniqueIndex:idx_cart_product_variant" json:"cart_id"`          // 购物车ID
	ProductID uint           `gorm:"not null;uniqueIndex:idx_cart_product_variant" json:"product_id"`       // 商品ID
	VariantID uint           `gorm:"not null;default:0;uniqueIndex:idx_cart_product_variant" json:"variant_id"` // 规格ID（0 表示无规格）
	Quantity  int            `gorm:"not null" json:"quantity"`                                              // 数量（>= 1）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                               // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                               // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                                        // 软删除时间

	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"` // 关联规格
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
