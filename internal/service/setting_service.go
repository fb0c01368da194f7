package service

import (
	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/logger"
	"github.com/groupbuy-next/internal/repository"
)

// SettingService 设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// OrderingEnabled 读取接单开关。设置缺席时视为开启。
func (s *SettingService) OrderingEnabled() (bool, error) {
	setting, err := s.repo.GetByKey(constants.SettingKeyOrderingEnabled)
	if err != nil {
		return false, err
	}
	if setting == nil {
		return true, nil
	}
	return setting.Value != "false", nil
}

// SetOrderingEnabled 切换接单开关
func (s *SettingService) SetOrderingEnabled(enabled bool) error {
	value := "true"
	if !enabled {
		value = "false"
	}
	if _, err := s.repo.Upsert(constants.SettingKeyOrderingEnabled, value); err != nil {
		return err
	}
	logger.Infow("ordering gate toggled", "enabled", enabled)
	return nil
}
