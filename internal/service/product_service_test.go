package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/models"
	"github.com/groupbuy-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}, &models.Order{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewProductVariantRepository(db),
	), db
}

func TestCreateProductRejectsDuplicateActiveKeyword(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	if _, err := svc.Create(ProductInput{Keyword: "N01", Name: "唐衣", Variants: []VariantInput{{Size: "M", Price: 880}}}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ProductInput{Keyword: "n01", Name: "別款", Variants: []VariantInput{{Size: "F"}}}); !errors.Is(err, ErrKeywordConflict) {
		t.Fatalf("want ErrKeywordConflict got %v", err)
	}
}

func TestCreateProductAllowsKeywordReuseAfterArchive(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	first, err := svc.Create(ProductInput{Keyword: "N02", Name: "外套", Variants: []VariantInput{{Size: "F", Price: 100}}})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", first.ID).
		Update("status", constants.ProductStatusArchived).Error; err != nil {
		t.Fatalf("archive product failed: %v", err)
	}

	if _, err := svc.Create(ProductInput{Keyword: "N02", Name: "新外套", Variants: []VariantInput{{Size: "F", Price: 200}}}); err != nil {
		t.Fatalf("reuse of archived keyword should succeed: %v", err)
	}
}

func TestUpdateProductReplacesVariantSetWholesale(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		Keyword: "N03",
		Name:    "唐衣",
		Variants: []VariantInput{
			{Size: "S", Price: 880},
			{Size: "M", Price: 880},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(product.ID, ProductInput{
		Keyword: "N03",
		Name:    "唐衣-改",
		Variants: []VariantInput{
			{Size: "L", Price: 990},
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Variants) != 1 || updated.Variants[0].Size != "L" || updated.Variants[0].Price != 990 {
		t.Fatalf("variant set should be fully replaced, got %+v", updated.Variants)
	}

	var count int64
	if err := db.Model(&models.ProductVariant{}).Where("product_id = ?", product.ID).Count(&count).Error; err != nil {
		t.Fatalf("count variants failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("old variants should be deleted, got %d rows", count)
	}
}

func TestUpsertFromChatUpdatesExistingActiveProduct(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	first, err := svc.UpsertFromChat(UploadIntent{
		Keyword: "N04",
		Name:    "唐衣-紅",
		Sizes:   []SizeEntry{{Size: "S"}, {Size: "M"}},
	})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second, err := svc.UpsertFromChat(UploadIntent{
		Keyword:     "N04",
		Name:        "唐衣-紅（改）",
		Description: "新色",
		Sizes:       []SizeEntry{{Size: "L", Price: 880}},
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert should update in place, got new id %d", second.ID)
	}
	if second.Name != "唐衣-紅（改）" {
		t.Fatalf("name not updated: %s", second.Name)
	}
	if len(second.Variants) != 1 || second.Variants[0].Size != "L" || second.Variants[0].Price != 880 {
		t.Fatalf("variants should be replaced, got %+v", second.Variants)
	}
}

func TestUpsertFromChatDefaultsToFreeSize(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	product, err := svc.UpsertFromChat(UploadIntent{Keyword: "N05", Name: "帽子"})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if len(product.Variants) != 1 || product.Variants[0].Size != constants.DefaultFreeSize {
		t.Fatalf("missing size list should create single F variant, got %+v", product.Variants)
	}
}

func TestNormalizeVariantsRejectsDuplicates(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	_, err := svc.Create(ProductInput{
		Keyword: "N06",
		Name:    "重複尺寸",
		Variants: []VariantInput{
			{Size: "M", Price: 100},
			{Size: "M", Price: 200},
		},
	})
	if !errors.Is(err, ErrInvalidVariant) {
		t.Fatalf("want ErrInvalidVariant got %v", err)
	}
}
