package main

import (
	"github.com/lumistore/storefront/internal/config"
	"github.com/lumistore/storefront/internal/constants"
	"github.com/lumistore/storefront/internal/logger"
	"github.com/lumistore/storefront/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	price := func(value string) models.Money {
		d, err := decimal.NewFromString(value)
		if err != nil {
			stdLog.Fatalf("Invalid seed price %s: %v", value, err)
		}
		return models.NewMoneyFromDecimal(d)
	}
	priceRef := func(value string) *models.Money {
		m := price(value)
		return &m
	}
	stockRef := func(value int) *int {
		return &value
	}

	// 单规格商品
	simpleProducts := []models.Product{
		{
			Name:        "Canvas Tote Bag",
			Description: "Heavy-duty cotton canvas tote with reinforced handles.",
			Images:      models.StringArray{"/images/canvas-tote.jpg"},
			IsActive:    true,
			PriceAmount: priceRef("24.90"),
			Stock:       stockRef(120),
		},
		{
			Name:        "Ceramic Pour-Over Set",
			Description: "Two-piece ceramic dripper and carafe for slow brewing.",
			Images:      models.StringArray{"/images/pour-over.jpg"},
			IsActive:    true,
			PriceAmount: priceRef("58.00"),
			Stock:       stockRef(35),
		},
	}

	for _, product := range simpleProducts {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s", product.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Name)
		}
	}

	// 多规格商品
	variantedProducts := []models.Product{
		{
			Name:        "Classic Cotton Tee",
			Description: "Mid-weight combed cotton tee, pre-shrunk.",
			Images:      models.StringArray{"/images/cotton-tee.jpg"},
			IsActive:    true,
			HasVariants: true,
			Variants: []models.ProductVariant{
				{Size: "S", Color: "White", PriceAmount: price("19.00"), Stock: 40, IsActive: true},
				{Size: "M", Color: "White", PriceAmount: price("19.00"), Stock: 55, IsActive: true},
				{Size: "L", Color: "White", PriceAmount: price("19.00"), Stock: 30, IsActive: true},
				{Size: "M", Color: "Black", PriceAmount: price("21.00"), Stock: 25, IsActive: true},
			},
		},
		{
			Name:        "Trail Running Shoe",
			Description: "Lightweight trail shoe with grippy outsole.",
			Images:      models.StringArray{"/images/trail-shoe.jpg"},
			IsActive:    true,
			HasVariants: true,
			Variants: []models.ProductVariant{
				{Size: "42", Color: "Slate", PriceAmount: price("112.00"), Stock: 12, IsActive: true},
				{Size: "43", Color: "Slate", PriceAmount: price("112.00"), Stock: 9, IsActive: true},
				{Size: "44", Color: "Ember", PriceAmount: price("118.00"), Stock: 6, IsActive: true},
			},
		},
	}

	for _, product := range variantedProducts {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s (%d variants)", product.Name, len(product.Variants))
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Name)
		}
	}

	// 演示用户（含购物车和默认地址）
	demoEmail := "demo@lumistore.dev"
	var existingUser models.User
	if err := models.DB.Where("email = ?", demoEmail).First(&existingUser).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("Demo12345"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash demo password: %v", err)
		}
		demoUser := models.User{
			Email:        demoEmail,
			PasswordHash: string(hash),
			FirstName:    "Demo",
			LastName:     "Shopper",
			Role:         constants.UserRoleCustomer,
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&demoUser).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.Cart{UserID: demoUser.ID}).Error; err != nil {
				return err
			}
			return tx.Create(&models.Address{
				UserID:      demoUser.ID,
				FullName:    "Demo Shopper",
				AddressLine: "42 Larch Street",
				City:        "Portland",
				State:       "OR",
				ZipCode:     "97201",
				Country:     "US",
				Type:        constants.AddressTypeShipping,
				IsDefault:   true,
			}).Error
		}); err != nil {
			stdLog.Printf("Failed to create demo user: %v", err)
		} else {
			stdLog.Printf("Created demo user: %s", demoEmail)
		}
	} else {
		stdLog.Printf("Demo user already exists: %s", demoEmail)
	}

	stdLog.Printf("Seed finished")
}
