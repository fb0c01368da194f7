package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"testing"

	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/models"
	"github.com/groupbuy-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupExportServiceTest(t *testing.T) (*ExportService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.ProductVariant{}, &models.Order{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewExportService(repository.NewOrderRepository(db)), db
}

func seedExportOrder(t *testing.T, db *gorm.DB, order *models.Order) {
	t.Helper()
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
}

func parseExport(t *testing.T, data []byte) [][]string {
	t.Helper()
	if !bytes.HasPrefix(data, []byte("\uFEFF")) {
		t.Fatalf("export should start with UTF-8 BOM")
	}
	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\uFEFF")))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv failed: %v", err)
	}
	return rows
}

func TestExportCSVHeaderAndRow(t *testing.T) {
	svc, db := setupExportServiceTest(t)

	user := &models.User{LineID: "U1", Name: "王小明", Role: constants.UserRoleCustomer}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	product := &models.Product{Keyword: "N01", Name: "唐衣", Status: constants.ProductStatusActive}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	seedExportOrder(t, db, &models.Order{
		UserID:      user.ID,
		ProductID:   product.ID,
		Size:        "M",
		Quantity:    2,
		TotalAmount: 1760,
		Status:      constants.OrderStatusConfirmed,
	})

	data, err := svc.ExportCSV(repository.OrderListFilter{})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	rows := parseExport(t, data)
	if len(rows) != 2 {
		t.Fatalf("want header + 1 row got %d rows", len(rows))
	}
	header := rows[0]
	if len(header) != 19 || header[0] != "訂單日期" || header[18] != "備註" {
		t.Fatalf("unexpected header: %v", header)
	}

	row := rows[1]
	if row[1] != "官方賴" {
		t.Fatalf("platform column: %q", row[1])
	}
	if row[2] != "王小明" || row[4] != "N01" || row[5] != "唐衣" || row[6] != "M" {
		t.Fatalf("identity columns wrong: %v", row)
	}
	if row[7] != "2" || row[8] != "880" || row[10] != "1760" {
		t.Fatalf("amount columns wrong: %v", row)
	}
	if row[18] != constants.OrderStatusConfirmed {
		t.Fatalf("note column should carry status, got %q", row[18])
	}
}

func TestExportCSVUnitPriceRounds(t *testing.T) {
	svc, db := setupExportServiceTest(t)

	user := &models.User{LineID: "U2", Role: constants.UserRoleCustomer}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	product := &models.Product{Keyword: "N02", Name: "外套", Status: constants.ProductStatusActive}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	// 1000 / 3 = 333.33...，单价列按四舍五入取整
	seedExportOrder(t, db, &models.Order{
		UserID:      user.ID,
		ProductID:   product.ID,
		Quantity:    3,
		TotalAmount: 1000,
		Status:      constants.OrderStatusConfirmed,
	})

	data, err := svc.ExportCSV(repository.OrderListFilter{})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	rows := parseExport(t, data)
	if rows[1][8] != "333" {
		t.Fatalf("unit price should round, got %q", rows[1][8])
	}
	if rows[1][6] != constants.DefaultFreeSize {
		t.Fatalf("empty size should fall back to %s, got %q", constants.DefaultFreeSize, rows[1][6])
	}
}

func TestExportCSVNoteForCancelledOrders(t *testing.T) {
	svc, db := setupExportServiceTest(t)

	user := &models.User{LineID: "U3", Role: constants.UserRoleCustomer}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	product := &models.Product{Keyword: "N03", Name: "帽子", Status: constants.ProductStatusActive}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	reason := "缺貨"
	seedExportOrder(t, db, &models.Order{
		UserID:       user.ID,
		ProductID:    product.ID,
		Quantity:     1,
		TotalAmount:  100,
		Status:       constants.OrderStatusCancelled,
		DeleteReason: &reason,
	})
	seedExportOrder(t, db, &models.Order{
		UserID:      user.ID,
		ProductID:   product.ID,
		Quantity:    1,
		TotalAmount: 100,
		Status:      constants.OrderStatusCancelled,
	})

	data, err := svc.ExportCSV(repository.OrderListFilter{SortBy: "createdAt"})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	rows := parseExport(t, data)
	if len(rows) != 3 {
		t.Fatalf("want header + 2 rows got %d", len(rows))
	}
	notes := map[string]bool{rows[1][18]: true, rows[2][18]: true}
	if !notes["缺貨"] || !notes["取消"] {
		t.Fatalf("cancelled notes wrong: %v", notes)
	}
}
