package repository

import (
	"errors"
	"strings"

	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/models"

	"gorm.io/gorm"
)

// ProductVariantRepository 商品款式数据访问接口，承载库存账本
type ProductVariantRepository interface {
	GetByID(id uint) (*models.ProductVariant, error)
	GetByProductAndSize(productID uint, size string) (*models.ProductVariant, error)
	ListByProduct(productID uint) ([]models.ProductVariant, error)
	CreateBatch(variants []models.ProductVariant) error
	DeleteByProduct(productID uint) error
	TryReserve(variantID uint, quantity int) (bool, error)
	Release(variantID uint, quantity int) error
	ResetSoldAll() (int64, error)
	RecountSold() error
	ClearStockAll() (int64, error)
	WithTx(tx *gorm.DB) *GormProductVariantRepository
}

// GormProductVariantRepository GORM 实现
type GormProductVariantRepository struct {
	db *gorm.DB
}

// NewProductVariantRepository 创建款式仓库
func NewProductVariantRepository(db *gorm.DB) *GormProductVariantRepository {
	return &GormProductVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductVariantRepository) WithTx(tx *gorm.DB) *GormProductVariantRepository {
	if tx == nil {
		return r
	}
	return &GormProductVariantRepository{db: tx}
}

// GetByID 根据 ID 获取款式
func (r *GormProductVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// GetByProductAndSize 按商品与尺寸获取款式，先精确匹配再大小写折叠匹配
func (r *GormProductVariantRepository) GetByProductAndSize(productID uint, size string) (*models.ProductVariant, error) {
	if productID == 0 {
		return nil, errors.New("invalid product id")
	}
	var variant models.ProductVariant
	err := r.db.Where("product_id = ? AND size = ?", productID, size).First(&variant).Error
	if err == nil {
		return &variant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	variants, err := r.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	folded := strings.ToUpper(strings.TrimSpace(size))
	for i := range variants {
		if strings.ToUpper(variants[i].Size) == folded {
			return &variants[i], nil
		}
	}
	return nil, nil
}

// ListByProduct 获取商品下的全部款式
func (r *GormProductVariantRepository) ListByProduct(productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.db.Where("product_id = ?", productID).Order("id asc").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// CreateBatch 批量创建款式
func (r *GormProductVariantRepository) CreateBatch(variants []models.ProductVariant) error {
	if len(variants) == 0 {
		return nil
	}
	return r.db.Create(&variants).Error
}

// DeleteByProduct 删除指定商品下的款式
func (r *GormProductVariantRepository) DeleteByProduct(productID uint) error {
	if productID == 0 {
		return errors.New("invalid product id")
	}
	return r.db.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error
}

// TryReserve 预占库存。整条判定与扣减在单条 UPDATE 内完成，
// stock 为 NULL 表示无限库存，始终允许。
func (r *GormProductVariantRepository) TryReserve(variantID uint, quantity int) (bool, error) {
	if variantID == 0 || quantity <= 0 {
		return false, errors.New("invalid stock reserve params")
	}
	result := r.db.Model(&models.ProductVariant{}).
		Where("id = ? AND (stock IS NULL OR sold + ? <= stock)", variantID, quantity).
		Updates(map[string]interface{}{
			"sold": gorm.Expr("sold + ?", quantity),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Release 归还库存。无条件扣减 sold，允许出现负值，由盘点修正。
func (r *GormProductVariantRepository) Release(variantID uint, quantity int) error {
	if variantID == 0 || quantity <= 0 {
		return errors.New("invalid stock release params")
	}
	return r.db.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Updates(map[string]interface{}{
			"sold": gorm.Expr("sold - ?", quantity),
		}).Error
}

// ResetSoldAll 将全部款式的已售数清零
func (r *GormProductVariantRepository) ResetSoldAll() (int64, error) {
	result := r.db.Model(&models.ProductVariant{}).
		Where("sold <> 0").
		Update("sold", 0)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RecountSold 按未取消订单重新盘点已售数。
// 先全量清零，再按商品加尺寸聚合回填，两步在同一事务内执行。
func (r *GormProductVariantRepository) RecountSold() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductVariant{}).
			Where("1 = 1").
			Update("sold", 0).Error; err != nil {
			return err
		}

		var rows []struct {
			ProductID uint
			Size      string
			Total     int
		}
		if err := tx.Model(&models.Order{}).
			Select("product_id", "size", "SUM(quantity) AS total").
			Where("status <> ?", constants.OrderStatusCancelled).
			Group("product_id").Group("size").
			Scan(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			if err := tx.Model(&models.ProductVariant{}).
				Where("product_id = ? AND size = ?", row.ProductID, row.Size).
				Update("sold", row.Total).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ClearStockAll 清除全部款式的库存上限（置为无限）
func (r *GormProductVariantRepository) ClearStockAll() (int64, error) {
	result := r.db.Model(&models.ProductVariant{}).
		Where("stock IS NOT NULL").
		Update("stock", nil)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
