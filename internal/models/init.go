package models

import (
	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/logger"
)

// MigrateLegacyOrderStatus 把历史数据中的伪状态迁移到当前词表。
// 早期版本用 status=ARCHIVE 表示归档、status=DELETED 表示软删除；
// 归档现在是独立的 is_archived 标志，软删除由取消状态承接。
func MigrateLegacyOrderStatus() error {
	result := DB.Model(&Order{}).
		Where("status = ?", constants.LegacyOrderStatusArchive).
		Updates(map[string]interface{}{
			"status":      constants.OrderStatusConfirmed,
			"is_archived": true,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		logger.Infow("legacy_archive_status_migrated", "count", result.RowsAffected)
	}

	result = DB.Model(&Order{}).
		Where("status = ?", constants.LegacyOrderStatusDeleted).
		Update("status", constants.OrderStatusCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		logger.Infow("legacy_deleted_status_migrated", "count", result.RowsAffected)
	}
	return nil
}
