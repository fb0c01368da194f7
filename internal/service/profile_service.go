package service

import (
	"context"
	"time"

	"github.com/groupbuy-next/internal/cache"
	"github.com/groupbuy-next/internal/line"
	"github.com/groupbuy-next/internal/logger"
	"github.com/groupbuy-next/internal/repository"
)

// ProfileService LINE 用户资料同步服务
type ProfileService struct {
	userRepo   repository.UserRepository
	lineClient *line.Client
}

// NewProfileService 创建资料同步服务
func NewProfileService(userRepo repository.UserRepository, lineClient *line.Client) *ProfileService {
	return &ProfileService{
		userRepo:   userRepo,
		lineClient: lineClient,
	}
}

// Sync 拉取 LINE 用户资料并落库，命中缓存时跳过外呼
func (s *ProfileService) Sync(ctx context.Context, userID uint, lineID string) error {
	if userID == 0 || lineID == "" {
		return nil
	}

	if state, err := cache.GetLineProfile(ctx, lineID); err == nil && state != nil {
		return s.userRepo.UpdateProfile(userID, state.DisplayName, state.AvatarURL)
	}

	profile, err := s.lineClient.GetProfile(ctx, lineID)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdateProfile(userID, profile.DisplayName, profile.PictureURL); err != nil {
		return err
	}
	if err := cache.SetLineProfile(ctx, &cache.LineProfileState{
		LineID:      lineID,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.PictureURL,
	}); err != nil {
		logger.Warnw("line profile cache write failed", "line_id", lineID, "error", err)
	}
	return nil
}

// DirectProfileSyncer 无队列部署时的后台同步实现
type DirectProfileSyncer struct {
	Profiles *ProfileService
}

// SyncProfile 异步拉取，失败只记录日志
func (s *DirectProfileSyncer) SyncProfile(userID uint, lineID string) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Profiles.Sync(ctx, userID, lineID); err != nil {
			logger.Warnw("line profile sync failed", "line_id", lineID, "error", err)
		}
	}()
	return nil
}
