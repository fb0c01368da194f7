package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success 成功响应，直接输出数据体
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error 错误响应，HTTP 状态码承载错误类别
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, attachRequestID(c, gin.H{"error": msg}))
}

// Message 带 message 字段的响应（Webhook 应答使用）
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// BadRequest 400 响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, msg)
}

// NotFound 404 响应
func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, msg)
}

// Conflict 409 响应
func Conflict(c *gin.Context, msg string) {
	Error(c, http.StatusConflict, msg)
}

// Internal 500 响应
func Internal(c *gin.Context, msg string) {
	Error(c, http.StatusInternalServerError, msg)
}

func attachRequestID(c *gin.Context, data gin.H) gin.H {
	if c == nil {
		return data
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok && id != "" {
			data["requestId"] = id
		}
	}
	return data
}
