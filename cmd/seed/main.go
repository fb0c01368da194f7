package main

import (
	"flag"
	"os"
	"strings"

	"github.com/groupbuy-next/internal/config"
	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/logger"
	"github.com/groupbuy-next/internal/models"
	"github.com/groupbuy-next/internal/repository"
)

func main() {
	var resetSold bool
	var clearStock bool
	var recountSold bool
	flag.BoolVar(&resetSold, "reset-sold", false, "将全部款式已售数清零")
	flag.BoolVar(&clearStock, "clear-stock", false, "清除全部款式库存上限")
	flag.BoolVar(&recountSold, "recount-sold", false, "按未取消订单重新盘点已售数")
	flag.Parse()

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
	if err := models.MigrateLegacyOrderStatus(); err != nil {
		stdLog.Fatalf("Failed to migrate legacy order status: %v", err)
	}

	variantRepo := repository.NewProductVariantRepository(models.DB)

	// 维护指令：只执行所选操作后退出
	if resetSold || clearStock || recountSold {
		if resetSold {
			affected, err := variantRepo.ResetSoldAll()
			if err != nil {
				stdLog.Fatalf("Failed to reset sold counters: %v", err)
			}
			stdLog.Printf("Reset sold counters: %d variants", affected)
		}
		if clearStock {
			affected, err := variantRepo.ClearStockAll()
			if err != nil {
				stdLog.Fatalf("Failed to clear stock limits: %v", err)
			}
			stdLog.Printf("Cleared stock limits: %d variants", affected)
		}
		if recountSold {
			if err := variantRepo.RecountSold(); err != nil {
				stdLog.Fatalf("Failed to recount sold counters: %v", err)
			}
			stdLog.Printf("Recounted sold counters from orders")
		}
		return
	}

	// 初始化管理员（通过环境变量指定 LINE 用户标识）
	adminLineID := strings.TrimSpace(os.Getenv("GB_ADMIN_LINE_ID"))
	if adminLineID != "" {
		var existing models.User
		if err := models.DB.Where("line_id = ?", adminLineID).First(&existing).Error; err != nil {
			admin := models.User{
				LineID: adminLineID,
				Name:   "管理員",
				Role:   constants.UserRoleAdmin,
			}
			if err := models.DB.Create(&admin).Error; err != nil {
				stdLog.Printf("Failed to create admin user: %v", err)
			} else {
				stdLog.Printf("Created admin user: %s", adminLineID)
			}
		} else if existing.Role != constants.UserRoleAdmin {
			if err := models.DB.Model(&existing).Update("role", constants.UserRoleAdmin).Error; err != nil {
				stdLog.Printf("Failed to promote admin user: %v", err)
			} else {
				stdLog.Printf("Promoted user to admin: %s", adminLineID)
			}
		} else {
			stdLog.Printf("Admin user already exists: %s", adminLineID)
		}
	}

	// 示例商品
	ten := 10
	products := []models.Product{
		{
			Keyword: "N01",
			Name:    "adidas 唐衣-紅",
			Status:  constants.ProductStatusActive,
			Variants: []models.ProductVariant{
				{Size: "S", Price: 880, Stock: &ten},
				{Size: "M", Price: 880, Stock: &ten},
				{Size: "L", Price: 880},
			},
		},
		{
			Keyword: "N02",
			Name:    "連帽外套-黑",
			Status:  constants.ProductStatusActive,
			Variants: []models.ProductVariant{
				{Size: constants.DefaultFreeSize, Price: 1280},
			},
		},
	}

	for i := range products {
		var existing models.Product
		if err := models.DB.Where("keyword = ?", products[i].Keyword).First(&existing).Error; err != nil {
			if err := models.DB.Create(&products[i]).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", products[i].Keyword, err)
			} else {
				stdLog.Printf("Created product: %s", products[i].Keyword)
			}
		} else {
			stdLog.Printf("Product already exists: %s", products[i].Keyword)
		}
	}

	stdLog.Printf("Seed finished")
}
