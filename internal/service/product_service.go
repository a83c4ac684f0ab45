package service

import (
	"strings"

	"github.com/lumistore/storefront/internal/models"
	"github.com/lumistore/storefront/internal/repository"

	"gorm.io/gorm"
)

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// ListProducts 商品列表（含派生价格区间与库存合计）
func (s *ProductService) ListProducts(page, pageSize int, onlyActive bool) ([]models.Product, int64, error) {
	products, total, err := s.productRepo.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		OnlyActive: onlyActive,
	})
	if err != nil {
		return nil, 0, err
	}
	for i := range products {
		products[i].ComputeDerived()
	}
	return products, total, nil
}

// GetProduct 商品详情
func (s *ProductService) GetProduct(id uint, onlyActive bool) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(id, onlyActive)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	product.ComputeDerived()
	return product, nil
}

// VariantInput 规格输入
type VariantInput struct {
	Size  string
	Color string
	Price models.Money
	Stock int
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	Name        string
	Description string
	Images      []string
	IsActive    bool
	Price       *models.Money
	Stock       *int
	Variants    []VariantInput
}

// validateShape 校验商品形态：本体价/库存与规格二选一。
func validateShape(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrProductShapeInvalid
	}
	if len(input.Variants) > 0 {
		if input.Price != nil || input.Stock != nil {
			return ErrProductShapeInvalid
		}
		for _, v := range input.Variants {
			if v.Stock < 0 {
				return ErrProductShapeInvalid
			}
		}
		return nil
	}
	if input.Price == nil || input.Stock == nil || *input.Stock < 0 {
		return ErrProductShapeInvalid
	}
	return nil
}

// CreateProduct 创建商品（多规格商品连同规格行一起创建）
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	if err := validateShape(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Images:      models.StringArray(input.Images),
		IsActive:    input.IsActive,
		HasVariants: len(input.Variants) > 0,
		PriceAmount: input.Price,
		Stock:       input.Stock,
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.WithTx(tx).Create(product); err != nil {
			return err
		}
		if len(input.Variants) == 0 {
			return nil
		}
		variants := make([]models.ProductVariant, 0, len(input.Variants))
		for _, v := range input.Variants {
			variants = append(variants, models.ProductVariant{
				ProductID:   product.ID,
				Size:        strings.TrimSpace(v.Size),
				Color:       strings.TrimSpace(v.Color),
				PriceAmount: v.Price,
				Stock:       v.Stock,
				IsActive:    true,
			})
		}
		return s.variantRepo.WithTx(tx).CreateBatch(variants)
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(product.ID, false)
}

// UpdateProduct 更新商品（提供规格时整体替换规格行）
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	if err := validateShape(input); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Images = models.StringArray(input.Images)
	product.IsActive = input.IsActive
	product.HasVariants = len(input.Variants) > 0
	product.PriceAmount = input.Price
	product.Stock = input.Stock
	product.Variants = nil

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.WithTx(tx).Update(product); err != nil {
			return err
		}
		variantRepo := s.variantRepo.WithTx(tx)
		if err := variantRepo.DeleteByProduct(product.ID); err != nil {
			return err
		}
		if len(input.Variants) == 0 {
			return nil
		}
		variants := make([]models.ProductVariant, 0, len(input.Variants))
		for _, v := range input.Variants {
			variants = append(variants, models.ProductVariant{
				ProductID:   product.ID,
				Size:        strings.TrimSpace(v.Size),
				Color:       strings.TrimSpace(v.Color),
				PriceAmount: v.Price,
				Stock:       v.Stock,
				IsActive:    true,
			})
		}
		return variantRepo.CreateBatch(variants)
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(product.ID, false)
}

// DeleteProduct 删除商品（软删除，连同规格）
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id, false)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.variantRepo.WithTx(tx).DeleteByProduct(id); err != nil {
			return err
		}
		return s.productRepo.WithTx(tx).Delete(id)
	})
}
