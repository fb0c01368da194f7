package worker

import (
	"context"
	"encoding/json"

	"github.com/groupbuy-next/internal/logger"
	"github.com/groupbuy-next/internal/provider"
	"github.com/groupbuy-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskLineReply, c.handleLineReply)
	mux.HandleFunc(queue.TaskLinePush, c.handleLinePush)
	mux.HandleFunc(queue.TaskLineProfileSync, c.handleLineProfileSync)
}

func (c *Consumer) handleLineReply(ctx context.Context, task *asynq.Task) error {
	var payload queue.LineReplyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_line_reply_unmarshal_failed", "error", err)
		return err
	}
	if payload.ReplyToken == "" || len(payload.Texts) == 0 {
		logger.Debugw("worker_line_reply_skip_invalid_payload")
		return nil
	}
	if err := c.LineClient.Reply(ctx, payload.ReplyToken, payload.Texts...); err != nil {
		logger.Warnw("worker_line_reply_failed", "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleLinePush(ctx context.Context, task *asynq.Task) error {
	var payload queue.LinePushPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_line_push_unmarshal_failed", "error", err)
		return err
	}
	if payload.To == "" || len(payload.Texts) == 0 {
		logger.Debugw("worker_line_push_skip_invalid_payload")
		return nil
	}
	if err := c.LineClient.Push(ctx, payload.To, payload.Texts...); err != nil {
		logger.Warnw("worker_line_push_failed", "to", payload.To, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleLineProfileSync(ctx context.Context, task *asynq.Task) error {
	var payload queue.LineProfileSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_line_profile_sync_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 || payload.LineID == "" {
		logger.Debugw("worker_line_profile_sync_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	if err := c.ProfileService.Sync(ctx, payload.UserID, payload.LineID); err != nil {
		logger.Warnw("worker_line_profile_sync_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	return nil
}
