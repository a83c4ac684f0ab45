package service

import "github.com/lumistore/storefront/internal/models"

// orderLine 订单行的价格与库存来源
type orderLine struct {
	UnitPrice models.Money
	Available int
}

// resolveOrderLine 解析订单行的单价与可售库存。
// 这是唯一允许读取商品价格/库存列的入口：
//   - 简单商品必须携带本体价格与库存，且不得指定规格；
//   - 多规格商品必须指定属于该商品且启用的规格，价格与库存取规格行。
func resolveOrderLine(product *models.Product, variant *models.ProductVariant) (*orderLine, error) {
	if product == nil || product.ID == 0 || !product.IsActive {
		return nil, ErrProductNotAvailable
	}

	if !product.HasVariants {
		if variant != nil {
			return nil, ErrProductShapeInvalid
		}
		if product.PriceAmount == nil || product.Stock == nil {
			return nil, ErrProductShapeInvalid
		}
		return &orderLine{UnitPrice: *product.PriceAmount, Available: *product.Stock}, nil
	}

	if variant == nil {
		return nil, ErrVariantRequired
	}
	if variant.ProductID != product.ID || !variant.IsActive {
		return nil, ErrVariantNotFound
	}
	return &orderLine{UnitPrice: variant.PriceAmount, Available: variant.Stock}, nil
}
