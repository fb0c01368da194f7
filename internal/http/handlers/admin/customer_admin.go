package admin

import (
	"github.com/groupbuy-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCustomers 客户列表，可按名称模糊过滤
func (h *Handler) GetCustomers(c *gin.Context) {
	users, err := h.UserRepo.ListCustomers(c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, users)
}
