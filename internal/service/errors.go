package service

import "errors"

// 服务层业务错误，由 HTTP 层与回复模板映射为对外表现
var (
	ErrProductNotFound = errors.New("商品不存在或已下架")
	ErrSizeNotFound    = errors.New("尺寸不存在")
	ErrSoldOut         = errors.New("库存不足")
	ErrKeywordConflict = errors.New("商品代号已被占用")
	ErrStockConflict   = errors.New("库存不足，无法恢复订单")
	ErrOrderNotFound   = errors.New("订单不存在")
	ErrInvalidStatus   = errors.New("无效的订单状态")
	ErrInvalidQuantity = errors.New("无效的数量")
	ErrEmptyOrderIDs   = errors.New("未指定订单")
	ErrNoUpdateFields  = errors.New("未指定更新字段")
	ErrInvalidVariant  = errors.New("无效的款式定义")
	ErrUserNotFound    = errors.New("用户不存在")
)
