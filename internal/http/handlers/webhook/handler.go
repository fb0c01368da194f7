package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/groupbuy-next/internal/http/response"
	"github.com/groupbuy-next/internal/line"
	"github.com/groupbuy-next/internal/logger"
	"github.com/groupbuy-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler Webhook 处理器
type Handler struct {
	*provider.Container
}

// New 创建 Webhook 处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// HandleWebhook 接收 LINE Webhook 投递。
// 签名缺失回 400，签名不合法回 401；签名通过后无论事件处理结果如何都回 200，
// 避免平台对同一批事件反复重投。
func (h *Handler) HandleWebhook(c *gin.Context) {
	signature := c.GetHeader("X-Line-Signature")
	if signature == "" {
		response.Message(c, http.StatusBadRequest, "Missing signature")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid body")
		return
	}

	if !line.ValidateSignature(h.Config.Line.ChannelSecret, signature, body) {
		logger.Warnw("webhook signature mismatch", "remote", c.ClientIP())
		response.Message(c, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var webhookBody line.WebhookBody
	if err := json.Unmarshal(body, &webhookBody); err != nil {
		logger.Warnw("webhook body unmarshal failed", "error", err)
		response.Message(c, http.StatusOK, "OK")
		return
	}

	h.WebhookService.HandleEvents(c.Request.Context(), &webhookBody)
	response.Message(c, http.StatusOK, "OK")
}
