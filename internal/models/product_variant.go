package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant 商品规格表（尺码 x 颜色维度，各自持有价格与库存）
type ProductVariant struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	ProductID   uint           `gorm:"not null;index" json:"product_id"`                          // 商品ID
	Size        string         `gorm:"type:varchar(50);default:''" json:"size"`                   // 尺码
	Color       string         `gorm:"type:varchar(50);default:''" json:"color"`                  // 颜色
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 规格价格
	Stock       int            `gorm:"not null;default:0" json:"stock"`                           // 规格库存（始终 >= 0）
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                       // 是否启用
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}
