package provider

import (
	"time"

	"github.com/groupbuy-next/internal/cache"
	"github.com/groupbuy-next/internal/config"
	"github.com/groupbuy-next/internal/line"
	"github.com/groupbuy-next/internal/logger"
	"github.com/groupbuy-next/internal/models"
	"github.com/groupbuy-next/internal/queue"
	"github.com/groupbuy-next/internal/repository"
	"github.com/groupbuy-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	LineClient  *line.Client

	// Repositories
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	VariantRepo repository.ProductVariantRepository
	OrderRepo   repository.OrderRepository
	SettingRepo repository.SettingRepository

	// Services
	OrderService   *service.OrderService
	ProductService *service.ProductService
	SettingService *service.SettingService
	ExportService  *service.ExportService
	ProfileService *service.ProfileService
	WebhookService *service.WebhookService
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

	lineClient := line.NewClient(
		cfg.Line.APIEndpoint,
		cfg.Line.ChannelToken,
		time.Duration(cfg.Line.TimeoutMS)*time.Millisecond,
	)

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		LineClient:  lineClient,
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
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.VariantRepo, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.VariantRepo)
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.ExportService = service.NewExportService(c.OrderRepo)
	c.ProfileService = service.NewProfileService(c.UserRepo, c.LineClient)

	// 队列可用时回复与资料同步走异步任务，否则直连 LINE API
	var sender service.ReplySender = c.LineClient
	var syncer service.ProfileSyncer = &service.DirectProfileSyncer{Profiles: c.ProfileService}
	if c.QueueClient.Enabled() {
		sender = &service.QueueReplySender{Client: c.QueueClient}
		syncer = &service.QueueProfileSyncer{Client: c.QueueClient}
	}
	c.WebhookService = service.NewWebhookService(c.UserRepo, c.OrderService, c.ProductService, c.SettingService, sender, syncer)
}
