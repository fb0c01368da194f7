package cache

import (
	"context"
	"fmt"
	"time"
)

const lineProfileCacheTTL = 6 * time.Hour

// LineProfileState LINE 用户资料快照，仅用于服务端 Redis 缓存
type LineProfileState struct {
	LineID      string `json:"line_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	UpdatedAt   int64  `json:"updated_at"`
}

func lineProfileKey(lineID string) string {
	return fmt.Sprintf("line:profile:%s", lineID)
}

// GetLineProfile 读取缓存的 LINE 用户资料
func GetLineProfile(ctx context.Context, lineID string) (*LineProfileState, error) {
	if lineID == "" {
		return nil, nil
	}
	var state LineProfileState
	hit, err := GetJSON(ctx, lineProfileKey(lineID), &state)
	if err != nil || !hit {
		return nil, err
	}
	return &state, nil
}

// SetLineProfile 写入 LINE 用户资料缓存
func SetLineProfile(ctx context.Context, state *LineProfileState) error {
	if state == nil || state.LineID == "" {
		return nil
	}
	state.UpdatedAt = time.Now().Unix()
	return SetJSON(ctx, lineProfileKey(state.LineID), state, lineProfileCacheTTL)
}

// DelLineProfile 删除 LINE 用户资料缓存
func DelLineProfile(ctx context.Context, lineID string) error {
	if lineID == "" {
		return nil
	}
	return Del(ctx, lineProfileKey(lineID))
}
