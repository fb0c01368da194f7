package constants

// 订单状态常量
const (
	OrderStatusPending    = "PENDING"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusPurchased  = "PURCHASED"
	OrderStatusShipping   = "SHIPPING"
	OrderStatusArrived    = "ARRIVED"
	OrderStatusOutOfStock = "OUT_OF_STOCK"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// 旧版订单状态（仅迁移时识别）
const (
	LegacyOrderStatusArchive = "ARCHIVE"
	LegacyOrderStatusDeleted = "DELETED"
)

// 商品状态常量
const (
	ProductStatusActive   = "ACTIVE"
	ProductStatusArchived = "ARCHIVED"
)

// 用户角色常量
const (
	UserRoleCustomer = "CUSTOMER"
	UserRoleAdmin    = "ADMIN"
)

// 设置键常量
const (
	SettingKeyOrderingEnabled = "ordering_enabled"
)

// DefaultFreeSize 多规格商品未指定尺寸时的默认均码标签
const DefaultFreeSize = "F"

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskLineReply       = "line:reply"
	TaskLinePush        = "line:push"
	TaskLineProfileSync = "line:profile_sync"
)

var validOrderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusConfirmed:  true,
	OrderStatusPurchased:  true,
	OrderStatusShipping:   true,
	OrderStatusArrived:    true,
	OrderStatusOutOfStock: true,
	OrderStatusCompleted:  true,
	OrderStatusCancelled:  true,
}

// IsValidOrderStatus 判断是否为合法订单状态
func IsValidOrderStatus(status string) bool {
	return validOrderStatuses[status]
}

// IsStockConsumingStatus 判断该状态是否占用库存。
// 除 CANCELLED 外的所有状态都视为持有库存预占。
func IsStockConsumingStatus(status string) bool {
	return status != OrderStatusCancelled
}
