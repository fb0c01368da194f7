package admin

import (
	"github.com/groupbuy-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetSettings 读取接单开关
func (h *Handler) GetSettings(c *gin.Context) {
	enabled, err := h.SettingService.OrderingEnabled()
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"enabled": enabled})
}

// settingRequest 开关切换请求体，value 兼容旧版仪表板字段
type settingRequest struct {
	Enabled *bool   `json:"enabled"`
	Value   *string `json:"value"`
}

// UpdateSettings 切换接单开关
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	var enabled bool
	switch {
	case req.Enabled != nil:
		enabled = *req.Enabled
	case req.Value != nil:
		enabled = *req.Value != "false"
	default:
		response.BadRequest(c, "missing enabled or value")
		return
	}

	if err := h.SettingService.SetOrderingEnabled(enabled); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"enabled": enabled})
}
