package admin

import (
	"errors"
	"net/http"

	"github.com/groupbuy-next/internal/http/response"
	"github.com/groupbuy-next/internal/logger"
	"github.com/groupbuy-next/internal/service"

	"github.com/gin-gonic/gin"
)

// errorStatus 服务层错误到 HTTP 状态码的映射
var errorStatus = []struct {
	target error
	status int
}{
	{service.ErrProductNotFound, http.StatusNotFound},
	{service.ErrOrderNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrKeywordConflict, http.StatusConflict},
	{service.ErrStockConflict, http.StatusConflict},
	{service.ErrSoldOut, http.StatusConflict},
	{service.ErrSizeNotFound, http.StatusBadRequest},
	{service.ErrInvalidStatus, http.StatusBadRequest},
	{service.ErrInvalidQuantity, http.StatusBadRequest},
	{service.ErrInvalidVariant, http.StatusBadRequest},
	{service.ErrEmptyOrderIDs, http.StatusBadRequest},
	{service.ErrNoUpdateFields, http.StatusBadRequest},
}

// respondError 映射业务错误；未识别的错误按 500 返回并记录日志
func respondError(c *gin.Context, err error) {
	for _, entry := range errorStatus {
		if errors.Is(err, entry.target) {
			response.Error(c, entry.status, entry.target.Error())
			return
		}
	}
	logger.Errorw("admin_handler_internal_error", "path", c.FullPath(), "error", err)
	response.Internal(c, "Internal Server Error")
}
