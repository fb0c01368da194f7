package models

import "time"

// ProductVariant 商品规格表（尺寸+价格+库存维度）。
// Stock 为空表示不限量；Sold 为去范式化的已售计数，仅允许通过
// 原子预占/释放操作调整（迁移与重算工具除外）。
type ProductVariant struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                       // 主键
	ProductID uint      `gorm:"not null;index;uniqueIndex:idx_variant_product_size" json:"productId"`       // 商品ID
	Size      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_variant_product_size" json:"size"` // 尺寸标签（同商品内唯一）
	Price     int       `gorm:"not null;default:0" json:"price"`                                            // 单价（整数货币单位）
	Stock     *int      `json:"stock"`                                                                      // 库存上限（空 = 不限量）
	Sold      int       `gorm:"not null;default:0" json:"sold"`                                             // 已售计数
	CreatedAt time.Time `json:"createdAt"`                                                                  // 创建时间
	UpdatedAt time.Time `json:"updatedAt"`                                                                  // 更新时间
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}
