package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.ProductVariant{}, &models.Order{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func seedOrderFixtures(t *testing.T, db *gorm.DB) (*models.User, *models.Product) {
	t.Helper()
	user := &models.User{LineID: "U-test", Name: "測試用戶", Role: constants.UserRoleCustomer}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	product := &models.Product{Keyword: "N01", Name: "唐衣-紅", Status: constants.ProductStatusActive}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return user, product
}

func TestListAdminFiltersByStatusSet(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	user, product := seedOrderFixtures(t, db)

	statuses := []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusShipping,
		constants.OrderStatusCancelled,
	}
	for _, status := range statuses {
		order := &models.Order{UserID: user.ID, ProductID: product.ID, Size: "M", Quantity: 1, TotalAmount: 880, Status: status}
		if err := repo.Create(order); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	orders, err := repo.ListAdmin(OrderListFilter{
		Statuses: []string{constants.OrderStatusConfirmed, constants.OrderStatusShipping},
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders want 2 got %d", len(orders))
	}
	for _, order := range orders {
		if order.Status == constants.OrderStatusCancelled {
			t.Fatalf("cancelled order should be filtered out")
		}
	}
}

func TestListAdminFiltersByKeywordJoin(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	user, product := seedOrderFixtures(t, db)
	other := &models.Product{Keyword: "N02", Name: "外套-黑", Status: constants.ProductStatusActive}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	for _, productID := range []uint{product.ID, other.ID} {
		order := &models.Order{UserID: user.ID, ProductID: productID, Size: "F", Quantity: 1, TotalAmount: 100, Status: constants.OrderStatusConfirmed}
		if err := repo.Create(order); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	orders, err := repo.ListAdmin(OrderListFilter{Keyword: "N02"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("orders want 1 got %d", len(orders))
	}
	if orders[0].ProductID != other.ID {
		t.Fatalf("keyword filter returned wrong product")
	}
}

func TestListAdminDateRangeIncludesEndOfDay(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	user, product := seedOrderFixtures(t, db)

	base := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.Add(-48 * time.Hour),               // 范围外
		base.Add(10 * time.Hour),                // 范围内
		base.Add(23*time.Hour + 59*time.Minute), // 截止日当天深夜，仍在范围内
	}
	for _, ts := range times {
		order := &models.Order{UserID: user.ID, ProductID: product.ID, Size: "M", Quantity: 1, TotalAmount: 880, Status: constants.OrderStatusConfirmed}
		if err := repo.Create(order); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
		if err := db.Model(order).Update("created_at", ts).Error; err != nil {
			t.Fatalf("backdate order failed: %v", err)
		}
	}

	from := base
	to := base
	orders, err := repo.ListAdmin(OrderListFilter{CreatedFrom: &from, CreatedTo: &to})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders want 2 got %d", len(orders))
	}
}

func TestListAdminArchivedFlag(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	user, product := seedOrderFixtures(t, db)

	active := &models.Order{UserID: user.ID, ProductID: product.ID, Size: "M", Quantity: 1, TotalAmount: 880, Status: constants.OrderStatusConfirmed}
	archived := &models.Order{UserID: user.ID, ProductID: product.ID, Size: "M", Quantity: 1, TotalAmount: 880, Status: constants.OrderStatusCompleted, IsArchived: true}
	for _, order := range []*models.Order{active, archived} {
		if err := repo.Create(order); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	flag := true
	orders, err := repo.ListAdmin(OrderListFilter{Archived: &flag})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != archived.ID {
		t.Fatalf("archived filter should return only archived orders")
	}

	orders, err = repo.ListAdmin(OrderListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("nil archived filter should return all orders, got %d", len(orders))
	}
}

func TestSumActiveTotalSkipsCancelled(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)
	user, product := seedOrderFixtures(t, db)

	rows := []models.Order{
		{UserID: user.ID, ProductID: product.ID, Size: "M", Quantity: 1, TotalAmount: 880, Status: constants.OrderStatusConfirmed},
		{UserID: user.ID, ProductID: product.ID, Size: "M", Quantity: 2, TotalAmount: 1760, Status: constants.OrderStatusArrived},
		{UserID: user.ID, ProductID: product.ID, Size: "M", Quantity: 1, TotalAmount: 880, Status: constants.OrderStatusCancelled},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("create orders failed: %v", err)
	}

	total, err := repo.SumActiveTotal()
	if err != nil {
		t.Fatalf("sum failed: %v", err)
	}
	if total != 2640 {
		t.Fatalf("total want 2640 got %d", total)
	}
}
