package models

import "time"

// Order 订单表。
// 订单只按 id 引用商品，不直接引用规格：尺寸以字符串去范式化存储，
// 规格被替换后订单里的尺寸引用允许悬空。TotalAmount 在下单时按
// 单价×数量写死，之后不再重算。
type Order struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                              // 主键
	UserID       uint      `gorm:"not null;index" json:"userId"`                                      // 下单用户ID
	ProductID    uint      `gorm:"not null;index" json:"productId"`                                   // 商品ID
	Size         string    `gorm:"type:varchar(64);not null;default:''" json:"size"`                  // 尺寸（去范式化字符串）
	Quantity     int       `gorm:"not null" json:"quantity"`                                          // 数量（正整数）
	TotalAmount  int       `gorm:"not null;default:0" json:"totalAmount"`                             // 总金额（下单时定格）
	Status       string    `gorm:"type:varchar(20);not null;default:'CONFIRMED';index" json:"status"` // 订单状态
	IsArchived   bool      `gorm:"not null;default:false;index" json:"isArchived"`                    // 是否归档（独立于状态的维度）
	DeleteReason *string   `json:"deleteReason"`                                                      // 取消/删除原因
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`                                            // 创建时间
	UpdatedAt    time.Time `json:"updatedAt"`                                                         // 更新时间

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`       // 下单用户
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品信息
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
