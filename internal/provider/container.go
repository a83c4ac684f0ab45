package provider

import (
	"github.com/lumistore/storefront/internal/cache"
	"github.com/lumistore/storefront/internal/config"
	"github.com/lumistore/storefront/internal/logger"
	"github.com/lumistore/storefront/internal/models"
	"github.com/lumistore/storefront/internal/queue"
	"github.com/lumistore/storefront/internal/repository"
	"github.com/lumistore/storefront/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	VariantRepo repository.ProductVariantRepository
	CartRepo    repository.CartRepository
	AddressRepo repository.AddressRepository
	OrderRepo   repository.OrderRepository

	// Services
	AuthService    *service.AuthService
	EmailService   *service.EmailService
	ProductService *service.ProductService
	CartService    *service.CartService
	AddressService *service.AddressService
	OrderService   *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewProductVariantRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.CartRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.VariantRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.VariantRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.VariantRepo, c.CartRepo, c.AddressRepo, c.QueueClient, c.Config.Order.PlaceTimeoutSeconds)
}
