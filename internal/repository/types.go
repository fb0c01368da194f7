package repository

import "time"

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	UserID      uint       // 按用户过滤（0 表示不过滤）
	Statuses    []string   // 状态集合（OR 语义）
	Keyword     string     // 商品代号
	Archived    *bool      // 归档视图开关（nil 不过滤）
	CreatedFrom *time.Time // 起始时间（含）
	CreatedTo   *time.Time // 截止时间（含）
	SortBy      string     // 排序字段（白名单映射后的列名）
	SortDesc    bool       // 是否倒序
}
