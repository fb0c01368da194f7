package admin

import (
	"fmt"
	"strings"
	"time"

	"github.com/groupbuy-next/internal/http/response"
	"github.com/groupbuy-next/internal/repository"
	"github.com/groupbuy-next/internal/service"

	"github.com/gin-gonic/gin"
)

// parseOrderFilter 解析订单列表查询参数
func parseOrderFilter(c *gin.Context) (repository.OrderListFilter, error) {
	filter := repository.OrderListFilter{
		SortBy:   c.DefaultQuery("sort", "createdAt"),
		SortDesc: c.DefaultQuery("order", "desc") != "asc",
		Keyword:  strings.ToUpper(strings.TrimSpace(c.Query("keyword"))),
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		for _, status := range strings.Split(raw, ",") {
			status = strings.TrimSpace(status)
			if status != "" {
				filter.Statuses = append(filter.Statuses, status)
			}
		}
	}
	if raw := strings.TrimSpace(c.Query("archived")); raw != "" {
		archived := raw == "true"
		filter.Archived = &archived
	}
	if raw := strings.TrimSpace(c.Query("startDate")); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("invalid startDate: %s", raw)
		}
		filter.CreatedFrom = &from
	}
	if raw := strings.TrimSpace(c.Query("endDate")); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("invalid endDate: %s", raw)
		}
		filter.CreatedTo = &to
	}
	return filter, nil
}

// GetOrders 订单列表
func (h *Handler) GetOrders(c *gin.Context) {
	filter, err := parseOrderFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	orders, err := h.OrderService.ListOrders(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, orders)
}

// updateOrdersRequest 批量更新请求体
type updateOrdersRequest struct {
	IDs          []uint  `json:"ids"`
	Status       *string `json:"status"`
	DeleteReason *string `json:"deleteReason"`
	IsArchived   *bool   `json:"isArchived"`
}

// UpdateOrders 批量更新订单状态或归档标记
func (h *Handler) UpdateOrders(c *gin.Context) {
	var req updateOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		response.BadRequest(c, service.ErrEmptyOrderIDs.Error())
		return
	}
	if req.Status == nil && req.IsArchived == nil {
		response.BadRequest(c, service.ErrNoUpdateFields.Error())
		return
	}

	var updated int
	if req.Status != nil {
		count, err := h.OrderService.BatchUpdateStatus(req.IDs, *req.Status, req.DeleteReason)
		if err != nil {
			respondError(c, err)
			return
		}
		updated = count
	}
	if req.IsArchived != nil {
		count, err := h.OrderService.SetArchived(req.IDs, *req.IsArchived)
		if err != nil {
			respondError(c, err)
			return
		}
		if count > updated {
			updated = count
		}
	}
	response.Success(c, gin.H{"updated": updated})
}

// deleteOrdersRequest 批量删除请求体
type deleteOrdersRequest struct {
	IDs []uint `json:"ids"`
}

// DeleteOrders 批量硬删除订单
func (h *Handler) DeleteOrders(c *gin.Context) {
	var req deleteOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		response.BadRequest(c, service.ErrEmptyOrderIDs.Error())
		return
	}
	deleted, err := h.OrderService.BatchDelete(req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}

// ExportOrders 导出订单 CSV
func (h *Handler) ExportOrders(c *gin.Context) {
	filter, err := parseOrderFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter.SortBy = "createdAt"
	filter.SortDesc = true

	data, err := h.ExportService.ExportCSV(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("orders_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "text/csv; charset=utf-8", data)
}
