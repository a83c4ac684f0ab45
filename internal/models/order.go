package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表。金额列在创建后不可变；Tax 与 ShippingCost 恒为 0。
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                       // 主键
	OrderNo           string         `gorm:"uniqueIndex;not null" json:"order_no"`                       // 订单编号
	UserID            uint           `gorm:"index;not null" json:"user_id"`                              // 用户ID
	ShippingAddressID uint           `gorm:"index;not null" json:"shipping_address_id"`                  // 收货地址ID
	Status            string         `gorm:"type:varchar(20);index;not null" json:"status"`              // 订单状态
	PaymentStatus     string         `gorm:"type:varchar(20);index;not null" json:"payment_status"`      // 支付状态（独立维度）
	PaymentMethod     string         `gorm:"type:varchar(20);not null" json:"payment_method"`            // 支付方式
	Subtotal          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`      // 商品小计
	Tax               Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`           // 税费
	ShippingCost      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_cost"` // 运费
	TotalAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`  // 实付金额
	CanceledAt        *time.Time     `gorm:"index" json:"canceled_at"`                                   // 取消时间
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`                 // 订单项
	User            *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`                   // 下单用户
	ShippingAddress *Address    `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"` // 收货地址
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
