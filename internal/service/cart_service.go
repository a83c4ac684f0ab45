package service

import (
	"github.com/lumistore/storefront/internal/models"
	"github.com/lumistore/storefront/internal/repository"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// CartView 购物车聚合视图
type CartView struct {
	CartID    uint              `json:"cart_id"`
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  models.Money      `json:"subtotal"`
}

// getOrCreateCart 取用户购物车。正常情况下注册即建，缺失时补建。
func (s *CartService) getOrCreateCart(userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	return s.cartRepo.CreateForUser(userID)
}

// GetCart 获取购物车（商品/规格实时数据 + 数量与小计汇总）
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}

	view := &CartView{
		CartID:   cart.ID,
		Items:    items,
		Subtotal: models.ZeroMoney(),
	}
	for i := range items {
		item := &items[i]
		view.ItemCount += item.Quantity
		line, err := resolveOrderLine(item.Product, item.Variant)
		if err != nil {
			// 已下架或形态损坏的条目不计入小计
			continue
		}
		view.Subtotal = view.Subtotal.AddMoney(line.UnitPrice.MulInt(item.Quantity))
	}
	return view, nil
}

// resolveCartLine 校验 (商品, 规格) 组合并返回价格/库存来源
func (s *CartService) resolveCartLine(productID, variantID uint) (*models.Product, *models.ProductVariant, *orderLine, error) {
	product, err := s.productRepo.GetByID(productID, true)
	if err != nil {
		return nil, nil, nil, err
	}
	if product == nil {
		return nil, nil, nil, ErrProductNotFound
	}

	var variant *models.ProductVariant
	if variantID != 0 {
		variant, err = s.variantRepo.GetByID(variantID)
		if err != nil {
			return nil, nil, nil, err
		}
		if variant == nil {
			return nil, nil, nil, ErrVariantNotFound
		}
	}

	line, err := resolveOrderLine(product, variant)
	if err != nil {
		return nil, nil, nil, err
	}
	return product, variant, line, nil
}

// AddItem 添加购物车项。同 (商品, 规格) 已存在时叠加数量，合并后数量不得超过可售库存。
func (s *CartService) AddItem(userID, productID, variantID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	product, _, line, err := s.resolveCartLine(productID, variantID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.GetItemByKey(cart.ID, productID, variantID)
	if err != nil {
		return nil, err
	}

	newQuantity := quantity
	if existing != nil {
		newQuantity += existing.Quantity
	}
	if newQuantity > line.Available {
		return nil, &InsufficientStockError{
			ProductID:   productID,
			VariantID:   variantID,
			ProductName: product.Name,
			Available:   line.Available,
			Requested:   newQuantity,
		}
	}

	if existing != nil {
		if err := s.cartRepo.UpdateItemQuantity(existing.ID, newQuantity); err != nil {
			return nil, err
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			VariantID: variantID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}

	return s.GetCart(userID)
}

// UpdateItemQuantity 更新购物车项数量（校验归属与库存上限）
func (s *CartService) UpdateItemQuantity(userID, itemID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CartID != cart.ID {
		return nil, ErrCartItemNotFound
	}

	product, _, line, err := s.resolveCartLine(item.ProductID, item.VariantID)
	if err != nil {
		return nil, err
	}
	if quantity > line.Available {
		return nil, &InsufficientStockError{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: product.Name,
			Available:   line.Available,
			Requested:   quantity,
		}
	}

	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// RemoveItem 删除购物车项（校验归属）
func (s *CartService) RemoveItem(userID, itemID uint) (*CartView, error) {
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CartID != cart.ID {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// ClearCart 清空购物车
func (s *CartService) ClearCart(userID uint) error {
	cart, err := s.getOrCreateCart(userID)
	if err != nil {
		return err
	}
	return s.cartRepo.ClearByCart(cart.ID)
}
