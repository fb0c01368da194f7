package models

import "time"

// Product 商品表。
// Keyword 仅要求在 ACTIVE 商品之间唯一（历史商品可复用代号），
// 因此数据库层只建普通索引，唯一性由服务层在事务内校验。
type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                           // 主键
	Keyword     string    `gorm:"type:varchar(64);not null;index" json:"keyword"`                 // 下单代号（统一大写）
	Name        string    `gorm:"not null" json:"name"`                                           // 商品名
	Description *string   `json:"description"`                                                    // 商品描述（可空）
	Status      string    `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"` // 状态（ACTIVE/ARCHIVED）
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`                                         // 创建时间
	UpdatedAt   time.Time `json:"updatedAt"`                                                      // 更新时间

	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"` // 规格列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
