package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表。下单时的快照，创建后不再更新；
// 取消订单按快照归还库存。VariantID 为 0 表示无规格商品。
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                       // 主键
	OrderID     uint           `gorm:"index;not null" json:"order_id"`                             // 订单ID
	ProductID   uint           `gorm:"index;not null" json:"product_id"`                           // 商品ID
	VariantID   uint           `gorm:"index;not null;default:0" json:"variant_id"`                 // 规格ID（0 表示无规格）
	ProductName string         `gorm:"type:varchar(200);not null" json:"product_name"`             // 商品名称快照
	Size        string         `gorm:"type:varchar(50);default:''" json:"size"`                    // 尺码快照
	Color       string         `gorm:"type:varchar(50);default:''" json:"color"`                   // 颜色快照
	Quantity    int            `gorm:"not null" json:"quantity"`                                   // 数量
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`    // 单价快照
	TotalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`   // 小计
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
