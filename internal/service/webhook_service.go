package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/line"
	"github.com/groupbuy-next/internal/logger"
	"github.com/groupbuy-next/internal/models"
	"github.com/groupbuy-next/internal/queue"
	"github.com/groupbuy-next/internal/repository"
)

// ReplySender 回复通道抽象，便于在队列与直连间切换
type ReplySender interface {
	Reply(ctx context.Context, replyToken string, texts ...string) error
}

// ProfileSyncer 用户资料同步抽象
type ProfileSyncer interface {
	SyncProfile(userID uint, lineID string) error
}

// QueueReplySender 经由异步队列投递回复
type QueueReplySender struct {
	Client *queue.Client
}

// Reply 入队 LINE 回复任务
func (s *QueueReplySender) Reply(_ context.Context, replyToken string, texts ...string) error {
	return s.Client.EnqueueLineReply(queue.LineReplyPayload{
		ReplyToken: replyToken,
		Texts:      texts,
	})
}

// QueueProfileSyncer 经由异步队列同步用户资料
type QueueProfileSyncer struct {
	Client *queue.Client
}

// SyncProfile 入队资料同步任务
func (s *QueueProfileSyncer) SyncProfile(userID uint, lineID string) error {
	return s.Client.EnqueueLineProfileSync(queue.LineProfileSyncPayload{
		UserID: userID,
		LineID: lineID,
	})
}

// WebhookService 入站消息处理服务
type WebhookService struct {
	userRepo       repository.UserRepository
	orderService   *OrderService
	productService *ProductService
	settingService *SettingService
	sender         ReplySender
	profileSyncer  ProfileSyncer
}

// NewWebhookService 创建 Webhook 服务
func NewWebhookService(userRepo repository.UserRepository, orderService *OrderService, productService *ProductService, settingService *SettingService, sender ReplySender, profileSyncer ProfileSyncer) *WebhookService {
	return &WebhookService{
		userRepo:       userRepo,
		orderService:   orderService,
		productService: productService,
		settingService: settingService,
		sender:         sender,
		profileSyncer:  profileSyncer,
	}
}

// HandleEvents 处理一次投递中的全部事件。
// 事件间并发处理，单个事件失败只记录日志，不影响整体应答。
func (s *WebhookService) HandleEvents(ctx context.Context, body *line.WebhookBody) {
	if body == nil || len(body.Events) == 0 {
		return
	}
	var wg sync.WaitGroup
	for i := range body.Events {
		wg.Add(1)
		go func(event line.Event) {
			defer wg.Done()
			s.handleEvent(ctx, event)
		}(body.Events[i])
	}
	wg.Wait()
}

func (s *WebhookService) handleEvent(ctx context.Context, event line.Event) {
	if event.Type != "message" || event.Message.Type != "text" {
		return
	}
	lineID := event.Source.UserID
	if lineID == "" {
		return
	}

	intent := ParseIntent(event.Message.Text)
	switch intent := intent.(type) {
	case UploadIntent:
		s.handleUpload(ctx, event, lineID, intent)
	case OrderIntent:
		s.handleOrder(ctx, event, lineID, intent)
	case QueryIntent:
		s.handleQuery(ctx, event, lineID)
	}
}

func (s *WebhookService) handleUpload(ctx context.Context, event line.Event, lineID string, intent UploadIntent) {
	user, err := s.userRepo.GetByLineID(lineID)
	if err != nil {
		logger.Errorw("webhook upload user lookup failed", "line_id", lineID, "error", err)
		return
	}
	// 上架指令仅限管理员，其余发送者静默忽略
	if user == nil || user.Role != constants.UserRoleAdmin {
		logger.Debugw("webhook upload ignored for non-admin", "line_id", lineID)
		return
	}

	product, err := s.productService.UpsertFromChat(intent)
	if err != nil {
		logger.Warnw("webhook upload failed", "keyword", intent.Keyword, "error", err)
		s.reply(ctx, event.ReplyToken, "❌ 商品上架失敗，請檢查格式或關鍵字是否重複。")
		return
	}
	s.reply(ctx, event.ReplyToken, uploadSuccessText(product))
}

func (s *WebhookService) handleOrder(ctx context.Context, event line.Event, lineID string, intent OrderIntent) {
	enabled, err := s.settingService.OrderingEnabled()
	if err != nil {
		logger.Errorw("webhook ordering gate check failed", "error", err)
		return
	}
	if !enabled {
		logger.Debugw("webhook order dropped, ordering disabled", "line_id", lineID, "keyword", intent.Keyword)
		return
	}

	user, err := s.ensureUser(lineID)
	if err != nil {
		logger.Errorw("webhook ensure user failed", "line_id", lineID, "error", err)
		return
	}

	order, err := s.orderService.CreateOrder(user.ID, intent.Keyword, intent.Size, intent.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			s.reply(ctx, event.ReplyToken, fmt.Sprintf("❓ 找不到代號為 %s 的商品。", intent.Keyword))
		case errors.Is(err, ErrSizeNotFound):
			s.reply(ctx, event.ReplyToken, "❓ 查無此尺寸，請確認尺寸後再試一次。")
		case errors.Is(err, ErrSoldOut):
			s.reply(ctx, event.ReplyToken, fmt.Sprintf("😭 %s 已售完，無法下單。", intent.Keyword))
		default:
			logger.Errorw("webhook order create failed", "line_id", lineID, "keyword", intent.Keyword, "error", err)
		}
		return
	}

	var productName string
	if order.Product != nil {
		productName = order.Product.Name
	}
	s.reply(ctx, event.ReplyToken, fmt.Sprintf(
		"✅ 訂單已確認！\n\n商品: %s\n尺寸: %s\n數量: %d\n總金額: $%d\n謝謝您的購買！",
		productName, order.Size, order.Quantity, order.TotalAmount,
	))
}

func (s *WebhookService) handleQuery(ctx context.Context, event line.Event, lineID string) {
	user, err := s.userRepo.GetByLineID(lineID)
	if err != nil {
		logger.Errorw("webhook query user lookup failed", "line_id", lineID, "error", err)
		return
	}
	if user == nil {
		s.reply(ctx, event.ReplyToken, "目前沒有進行中的訂單。")
		return
	}

	orders, total, err := s.orderService.QueryUserOrders(user.ID)
	if err != nil {
		logger.Errorw("webhook query orders failed", "user_id", user.ID, "error", err)
		return
	}
	if len(orders) == 0 {
		s.reply(ctx, event.ReplyToken, "目前沒有進行中的訂單。")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 您目前的訂單：\n")
	for i := range orders {
		name := ""
		if orders[i].Product != nil {
			name = orders[i].Product.Name
		}
		sb.WriteString(fmt.Sprintf("・%s %s x%d $%d\n", name, orders[i].Size, orders[i].Quantity, orders[i].TotalAmount))
	}
	sb.WriteString(fmt.Sprintf("\n合計: $%d", total))
	s.reply(ctx, event.ReplyToken, sb.String())
}

// ensureUser 按 LINE 标识取用户，不存在则惰性创建并触发资料同步
func (s *WebhookService) ensureUser(lineID string) (*models.User, error) {
	user, err := s.userRepo.GetByLineID(lineID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &models.User{
		LineID: lineID,
		Role:   constants.UserRoleCustomer,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	if s.profileSyncer != nil {
		if err := s.profileSyncer.SyncProfile(user.ID, lineID); err != nil {
			logger.Warnw("webhook profile sync enqueue failed", "line_id", lineID, "error", err)
		}
	}
	return user, nil
}

// reply 发送回复，失败只记录日志，不回滚已提交的状态
func (s *WebhookService) reply(ctx context.Context, replyToken string, text string) {
	if s.sender == nil || replyToken == "" {
		return
	}
	if err := s.sender.Reply(ctx, replyToken, text); err != nil {
		logger.Warnw("webhook reply failed", "error", err)
	}
}

func uploadSuccessText(product *models.Product) string {
	sizes := make([]string, 0, len(product.Variants))
	for i := range product.Variants {
		sizes = append(sizes, product.Variants[i].Size)
	}
	first := constants.DefaultFreeSize
	if len(sizes) > 0 {
		first = sizes[0]
	}
	return fmt.Sprintf(
		"✅ 商品上架成功！\n%s (%s)\n尺寸: %s\n\n👇 發送以下文字下單:\n---------------\n代號：%s\n數量：1\n尺寸：%s",
		product.Name, product.Keyword, strings.Join(sizes, ", "), product.Keyword, first,
	)
}
