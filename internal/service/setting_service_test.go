package service

import (
	"fmt"
	"testing"

	"github.com/groupbuy-next/internal/models"
	"github.com/groupbuy-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSettingServiceTest(t *testing.T) *SettingService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewSettingService(repository.NewSettingRepository(db))
}

func TestOrderingEnabledDefaultsOpen(t *testing.T) {
	svc := setupSettingServiceTest(t)

	// 设置缺席时必须视为开启
	enabled, err := svc.OrderingEnabled()
	if err != nil {
		t.Fatalf("read gate failed: %v", err)
	}
	if !enabled {
		t.Fatalf("absent setting should mean enabled")
	}
}

func TestOrderingEnabledToggleRoundTrip(t *testing.T) {
	svc := setupSettingServiceTest(t)

	if err := svc.SetOrderingEnabled(false); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	enabled, err := svc.OrderingEnabled()
	if err != nil {
		t.Fatalf("read gate failed: %v", err)
	}
	if enabled {
		t.Fatalf("gate should be disabled")
	}

	if err := svc.SetOrderingEnabled(true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	enabled, err = svc.OrderingEnabled()
	if err != nil {
		t.Fatalf("read gate failed: %v", err)
	}
	if !enabled {
		t.Fatalf("gate should be enabled")
	}
}
