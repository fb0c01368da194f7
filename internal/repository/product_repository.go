package repository

import (
	"errors"

	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	GetActiveByKeyword(keyword string) (*models.Product, error)
	List(status string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	ExistsActiveKeyword(keyword string, excludeID uint) (bool, error)
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// GetByID 根据 ID 获取商品（含款式）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Variants").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetActiveByKeyword 根据代号获取上架商品（含款式）
func (r *GormProductRepository) GetActiveByKeyword(keyword string) (*models.Product, error) {
	if keyword == "" {
		return nil, errors.New("invalid product keyword")
	}
	var product models.Product
	err := r.db.Preload("Variants").
		Where("keyword = ? AND status = ?", keyword, constants.ProductStatusActive).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// List 获取商品列表（含款式），status 为空时不过滤
func (r *GormProductRepository) List(status string) ([]models.Product, error) {
	var products []models.Product
	query := r.db.Preload("Variants")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品及其款式
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 按字段更新商品
func (r *GormProductRepository) Update(id uint, updates map[string]interface{}) error {
	if id == 0 {
		return errors.New("invalid product id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	if id == 0 {
		return errors.New("invalid product id")
	}
	return r.db.Delete(&models.Product{}, id).Error
}

// ExistsActiveKeyword 判断代号是否已被其他上架商品占用
func (r *GormProductRepository) ExistsActiveKeyword(keyword string, excludeID uint) (bool, error) {
	if keyword == "" {
		return false, nil
	}
	var count int64
	query := r.db.Model(&models.Product{}).
		Where("keyword = ? AND status = ?", keyword, constants.ProductStatusActive)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
