package models

import "time"

// User 用户表。首次收到未知 LINE 身份的消息时惰性创建。
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                           // 主键
	LineID    string    `gorm:"column:line_id;uniqueIndex;not null" json:"lineId"`              // LINE 平台用户标识
	Name      string    `gorm:"default:''" json:"name"`                                         // 显示名称（异步从平台拉取）
	AvatarURL string    `gorm:"column:avatar_url;default:''" json:"avatarUrl"`                  // 头像地址
	Role      string    `gorm:"type:varchar(20);not null;default:'CUSTOMER';index" json:"role"` // 角色（CUSTOMER/ADMIN）
	CreatedAt time.Time `gorm:"index" json:"createdAt"`                                         // 创建时间
	UpdatedAt time.Time `json:"updatedAt"`                                                      // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
