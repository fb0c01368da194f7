package repository

import (
	"errors"
	"time"

	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	ListByIDs(ids []uint) ([]models.Order, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, error)
	ListActiveByUser(userID uint) ([]models.Order, error)
	SumActiveTotal() (int64, error)
	UpdateFields(ids []uint, updates map[string]interface{}) error
	DeleteByIDs(ids []uint) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 创建订单
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID 根据 ID 获取订单（含用户与商品）
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("User").Preload("Product").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByIDs 按 ID 集合获取订单，未命中的 ID 直接缺席
func (r *GormOrderRepository) ListByIDs(ids []uint) ([]models.Order, error) {
	var orders []models.Order
	if len(ids) == 0 {
		return orders, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// sortColumns 列表排序字段白名单
var sortColumns = map[string]string{
	"createdAt":   "orders.created_at",
	"totalAmount": "orders.total_amount",
	"status":      "orders.status",
	"quantity":    "orders.quantity",
}

// ListAdmin 管理端订单列表
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{}).Preload("User").Preload("Product")

	if filter.UserID != 0 {
		query = query.Where("orders.user_id = ?", filter.UserID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("orders.status IN ?", filter.Statuses)
	}
	if filter.Archived != nil {
		query = query.Where("orders.is_archived = ?", *filter.Archived)
	}
	if filter.Keyword != "" {
		query = query.Joins("JOIN products ON products.id = orders.product_id").
			Where("products.keyword = ?", filter.Keyword)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("orders.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		// 截止日期按当天末尾取含
		end := filter.CreatedTo.Add(24*time.Hour - time.Nanosecond)
		query = query.Where("orders.created_at <= ?", end)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "orders.created_at"
	}
	direction := "asc"
	if filter.SortDesc {
		direction = "desc"
	}
	if err := query.Order(column + " " + direction).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListActiveByUser 获取用户未取消且未归档的订单（含商品）
func (r *GormOrderRepository) ListActiveByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if userID == 0 {
		return orders, nil
	}
	if err := r.db.Preload("Product").
		Where("user_id = ? AND status <> ? AND is_archived = ?", userID, constants.OrderStatusCancelled, false).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// SumActiveTotal 统计未取消订单的总金额
func (r *GormOrderRepository) SumActiveTotal() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Order{}).
		Where("status <> ?", constants.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// UpdateFields 按字段批量更新订单
func (r *GormOrderRepository) UpdateFields(ids []uint, updates map[string]interface{}) error {
	if len(ids) == 0 || len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Order{}).Where("id IN ?", ids).Updates(updates).Error
}

// DeleteByIDs 按 ID 集合删除订单
func (r *GormOrderRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", ids).Delete(&models.Order{}).Error
}
