package repository

import (
	"fmt"
	"sync"
	"testing"

	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupVariantRepositoryTest(t *testing.T) (*GormProductVariantRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}, &models.Order{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewProductVariantRepository(db), db
}

func createVariant(t *testing.T, db *gorm.DB, size string, price int, stock *int, sold int) *models.ProductVariant {
	t.Helper()
	product := &models.Product{
		Keyword: "T" + size,
		Name:    "測試商品",
		Status:  constants.ProductStatusActive,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant := &models.ProductVariant{
		ProductID: product.ID,
		Size:      size,
		Price:     price,
		Stock:     stock,
		Sold:      sold,
	}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	return variant
}

func reloadVariant(t *testing.T, db *gorm.DB, id uint) *models.ProductVariant {
	t.Helper()
	var variant models.ProductVariant
	if err := db.First(&variant, id).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	return &variant
}

func TestTryReserveRespectsStockCeiling(t *testing.T) {
	repo, db := setupVariantRepositoryTest(t)
	stock := 5
	variant := createVariant(t, db, "M", 880, &stock, 4)

	// 剩余 1 件，预占 2 件必须失败且不改动计数
	ok, err := repo.TryReserve(variant.ID, 2)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if ok {
		t.Fatalf("reserve of 2 with 1 left should fail")
	}
	if got := reloadVariant(t, db, variant.ID).Sold; got != 4 {
		t.Fatalf("sold want 4 got %d", got)
	}

	// 预占 1 件成功，sold 达到上限
	ok, err = repo.TryReserve(variant.ID, 1)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if !ok {
		t.Fatalf("reserve of 1 with 1 left should succeed")
	}
	if got := reloadVariant(t, db, variant.ID).Sold; got != 5 {
		t.Fatalf("sold want 5 got %d", got)
	}

	// 满库存后任何预占都失败
	ok, err = repo.TryReserve(variant.ID, 1)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if ok {
		t.Fatalf("reserve at full stock should fail")
	}
}

func TestTryReserveUnlimitedWhenStockNull(t *testing.T) {
	repo, db := setupVariantRepositoryTest(t)
	variant := createVariant(t, db, "F", 1280, nil, 0)

	ok, err := repo.TryReserve(variant.ID, 500)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if !ok {
		t.Fatalf("unlimited stock reserve should always succeed")
	}
	if got := reloadVariant(t, db, variant.ID).Sold; got != 500 {
		t.Fatalf("sold want 500 got %d", got)
	}
}

func TestTryReserveConcurrentNeverOversells(t *testing.T) {
	repo, db := setupVariantRepositoryTest(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	stock := 3
	variant := createVariant(t, db, "L", 700, &stock, 0)

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.TryReserve(variant.ID, 1)
			if err != nil {
				t.Errorf("reserve failed: %v", err)
				return
			}
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	var won int
	for ok := range results {
		if ok {
			won++
		}
	}
	if won != stock {
		t.Fatalf("winners want %d got %d", stock, won)
	}
	if got := reloadVariant(t, db, variant.ID).Sold; got != stock {
		t.Fatalf("sold want %d got %d", stock, got)
	}
}

func TestReleaseIsUnconditional(t *testing.T) {
	repo, db := setupVariantRepositoryTest(t)
	variant := createVariant(t, db, "S", 880, nil, 1)

	// 归还超过已售数也执行，负值留给盘点修正
	if err := repo.Release(variant.ID, 3); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if got := reloadVariant(t, db, variant.ID).Sold; got != -2 {
		t.Fatalf("sold want -2 got %d", got)
	}
}

func TestGetByProductAndSizeFoldsCase(t *testing.T) {
	repo, db := setupVariantRepositoryTest(t)
	variant := createVariant(t, db, "M", 880, nil, 0)

	found, err := repo.GetByProductAndSize(variant.ProductID, "m")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found == nil || found.ID != variant.ID {
		t.Fatalf("case-insensitive lookup should find variant")
	}

	missing, err := repo.GetByProductAndSize(variant.ProductID, "XL")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("unknown size should return nil")
	}
}

func TestRecountSoldRebuildsFromOrders(t *testing.T) {
	repo, db := setupVariantRepositoryTest(t)
	variant := createVariant(t, db, "M", 880, nil, 99)

	orders := []models.Order{
		{UserID: 1, ProductID: variant.ProductID, Size: "M", Quantity: 2, TotalAmount: 1760, Status: constants.OrderStatusConfirmed},
		{UserID: 1, ProductID: variant.ProductID, Size: "M", Quantity: 3, TotalAmount: 2640, Status: constants.OrderStatusShipping},
		{UserID: 2, ProductID: variant.ProductID, Size: "M", Quantity: 4, TotalAmount: 3520, Status: constants.OrderStatusCancelled},
	}
	if err := db.Create(&orders).Error; err != nil {
		t.Fatalf("create orders failed: %v", err)
	}

	if err := repo.RecountSold(); err != nil {
		t.Fatalf("recount failed: %v", err)
	}
	// 只统计未取消订单：2 + 3
	if got := reloadVariant(t, db, variant.ID).Sold; got != 5 {
		t.Fatalf("sold want 5 got %d", got)
	}
}

func TestResetSoldAllAndClearStockAll(t *testing.T) {
	repo, db := setupVariantRepositoryTest(t)
	stock := 10
	a := createVariant(t, db, "A", 100, &stock, 7)
	b := createVariant(t, db, "B", 200, nil, 3)

	affected, err := repo.ResetSoldAll()
	if err != nil {
		t.Fatalf("reset sold failed: %v", err)
	}
	if affected != 2 {
		t.Fatalf("reset affected want 2 got %d", affected)
	}
	if got := reloadVariant(t, db, a.ID).Sold; got != 0 {
		t.Fatalf("sold want 0 got %d", got)
	}

	affected, err = repo.ClearStockAll()
	if err != nil {
		t.Fatalf("clear stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("clear affected want 1 got %d", affected)
	}
	if got := reloadVariant(t, db, a.ID).Stock; got != nil {
		t.Fatalf("stock should be cleared to nil")
	}
	if got := reloadVariant(t, db, b.ID).Stock; got != nil {
		t.Fatalf("stock should stay nil")
	}
}
