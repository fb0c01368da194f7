package service

import (
	"bytes"
	"encoding/csv"

	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/models"
	"github.com/groupbuy-next/internal/repository"

	"github.com/shopspring/decimal"
)

// exportHeader 导出表头，列序沿用既有对账模板
var exportHeader = []string{
	"訂單日期",
	"訂購平台",
	"訂購人",
	"品牌",
	"編號",
	"訂購品項",
	"尺寸",
	"件數",
	"售價",
	"抽獎編號",
	"總金額",
	"庫存",
	"寄貨方式",
	"付款方式",
	"已到貨",
	"已出貨",
	"已叫貨",
	"已入帳",
	"備註",
}

// ExportService 订单 CSV 导出服务
type ExportService struct {
	orderRepo repository.OrderRepository
}

// NewExportService 创建导出服务
func NewExportService(orderRepo repository.OrderRepository) *ExportService {
	return &ExportService{orderRepo: orderRepo}
}

// unitPrice 按四舍五入折算单价
func unitPrice(order *models.Order) string {
	if order.Quantity <= 0 {
		return "0"
	}
	return decimal.NewFromInt(int64(order.TotalAmount)).
		Div(decimal.NewFromInt(int64(order.Quantity))).
		Round(0).String()
}

// exportNote 备注列：取消订单展示取消原因，其余展示状态
func exportNote(order *models.Order) string {
	if order.Status == constants.OrderStatusCancelled {
		if order.DeleteReason != nil && *order.DeleteReason != "" {
			return *order.DeleteReason
		}
		return "取消"
	}
	return order.Status
}

// ExportCSV 导出订单 CSV，带 UTF-8 BOM 以兼容 Excel
func (s *ExportService) ExportCSV(filter repository.OrderListFilter) ([]byte, error) {
	orders, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")
	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}

	for i := range orders {
		order := &orders[i]
		var name string
		if order.User != nil {
			name = order.User.Name
		}
		var keyword, productName string
		if order.Product != nil {
			keyword = order.Product.Keyword
			productName = order.Product.Name
		}
		size := order.Size
		if size == "" {
			size = constants.DefaultFreeSize
		}
		row := []string{
			order.CreatedAt.Format("2006/01/02"),
			"官方賴",
			name,
			"",
			keyword,
			productName,
			size,
			decimal.NewFromInt(int64(order.Quantity)).String(),
			unitPrice(order),
			"",
			decimal.NewFromInt(int64(order.TotalAmount)).String(),
			"",
			"",
			"",
			"FALSE",
			"FALSE",
			"FALSE",
			"FALSE",
			exportNote(order),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
