package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表。
//
// 商品有两种形态，二选一：
//   - 简单商品：HasVariants=false，PriceAmount 与 Stock 本体有效；
//   - 多规格商品：HasVariants=true，价格与库存由 Variants 承载，本体两列为 NULL。
//
// 任何价格/库存读取都必须经由 service 层的订单行解析器，不得直接取列。
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                   // 主键
	Name        string         `gorm:"type:varchar(200);not null" json:"name"` // 商品名称
	Description string         `gorm:"type:text" json:"description"`           // 商品描述
	HasVariants bool           `gorm:"not null;default:false" json:"has_variants"`
	PriceAmount *Money         `gorm:"type:decimal(20,2)" json:"price_amount"` // 本体价格（多规格商品为 NULL）
	Stock       *int           `gorm:"" json:"stock"`                          // 本体库存（多规格商品为 NULL）
	Images      StringArray    `gorm:"type:json" json:"images"`                // 图片数组
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`    // 是否上架
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                             // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间

	// 派生字段（仅结构，不写入数据库）
	MinPrice   *Money `gorm:"-" json:"min_price,omitempty"`   // 规格最低价
	MaxPrice   *Money `gorm:"-" json:"max_price,omitempty"`   // 规格最高价
	TotalStock int    `gorm:"-" json:"total_stock"`           // 可售库存合计

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"` // 规格列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ComputeDerived 根据形态填充派生的价格区间与库存合计
func (p *Product) ComputeDerived() {
	if !p.HasVariants {
		p.MinPrice = p.PriceAmount
		p.MaxPrice = p.PriceAmount
		if p.Stock != nil {
			p.TotalStock = *p.Stock
		}
		return
	}

	p.TotalStock = 0
	p.MinPrice = nil
	p.MaxPrice = nil
	for i := range p.Variants {
		v := &p.Variants[i]
		p.TotalStock += v.Stock
		price := v.PriceAmount
		if p.MinPrice == nil || price.LessThan(p.MinPrice.Decimal) {
			min := price
			p.MinPrice = &min
		}
		if p.MaxPrice == nil || price.GreaterThan(p.MaxPrice.Decimal) {
			max := price
			p.MaxPrice = &max
		}
	}
}
