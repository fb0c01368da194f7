package queue

import (
	"encoding/json"

	"github.com/groupbuy-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskLineReply LINE 回复消息任务
	TaskLineReply = constants.TaskLineReply
	// TaskLinePush LINE 主动推送任务
	TaskLinePush = constants.TaskLinePush
	// TaskLineProfileSync LINE 用户资料同步任务
	TaskLineProfileSync = constants.TaskLineProfileSync
)

// LineReplyPayload LINE 回复任务载荷
type LineReplyPayload struct {
	ReplyToken string   `json:"reply_token"`
	Texts      []string `json:"texts"`
}

// LinePushPayload LINE 推送任务载荷
type LinePushPayload struct {
	To    string   `json:"to"`
	Texts []string `json:"texts"`
}

// LineProfileSyncPayload LINE 用户资料同步任务载荷
type LineProfileSyncPayload struct {
	UserID uint   `json:"user_id"`
	LineID string `json:"line_id"`
}

// NewLineReplyTask 创建 LINE 回复任务
func NewLineReplyTask(payload LineReplyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLineReply, body), nil
}

// NewLinePushTask 创建 LINE 推送任务
func NewLinePushTask(payload LinePushPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLinePush, body), nil
}

// NewLineProfileSyncTask 创建 LINE 用户资料同步任务
func NewLineProfileSyncTask(payload LineProfileSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLineProfileSync, body), nil
}
