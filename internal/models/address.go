package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货/账单地址。每个 (用户, 类型) 至多一个默认地址。
type Address struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                    // 主键
	UserID      uint           `gorm:"not null;index" json:"user_id"`                           // 用户ID
	FullName    string         `gorm:"type:varchar(120);not null" json:"full_name"`             // 收件人姓名
	Phone       string         `gorm:"type:varchar(30);default:''" json:"phone"`                // 电话
	AddressLine string         `gorm:"type:varchar(300);not null" json:"address_line"`          // 街道地址
	City        string         `gorm:"type:varchar(100);not null" json:"city"`                  // 城市
	State       string         `gorm:"type:varchar(100);default:''" json:"state"`               // 省/州
	ZipCode     string         `gorm:"type:varchar(20);default:''" json:"zip_code"`             // 邮编
	Country     string         `gorm:"type:varchar(100);not null" json:"country"`               // 国家
	Type        string         `gorm:"type:varchar(20);not null;default:'SHIPPING';index" json:"type"` // 地址类型（SHIPPING/BILLING）
	IsDefault   bool           `gorm:"not null;default:false" json:"is_default"`                // 是否默认
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
