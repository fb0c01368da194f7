package service

import (
	"strings"

	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/logger"
	"github.com/groupbuy-next/internal/models"
	"github.com/groupbuy-next/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
	userRepo    repository.UserRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository, userRepo repository.UserRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
		userRepo:    userRepo,
	}
}

// resolveVariant 按尺寸解析款式：精确匹配、大小写折叠，
// 未给尺寸时回退到唯一款式或「F」默认款
func resolveVariant(product *models.Product, size string) *models.ProductVariant {
	size = strings.TrimSpace(size)
	if size != "" {
		for i := range product.Variants {
			if product.Variants[i].Size == size {
				return &product.Variants[i]
			}
		}
		folded := strings.ToUpper(size)
		for i := range product.Variants {
			if strings.ToUpper(product.Variants[i].Size) == folded {
				return &product.Variants[i]
			}
		}
		return nil
	}

	if len(product.Variants) == 1 {
		return &product.Variants[0]
	}
	for i := range product.Variants {
		if strings.EqualFold(product.Variants[i].Size, constants.DefaultFreeSize) {
			return &product.Variants[i]
		}
	}
	return nil
}

// CreateOrder 下单。库存预占与订单落库在同一事务内，预占失败不产生订单行。
func (s *OrderService) CreateOrder(userID uint, keyword, size string, quantity int) (*models.Order, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetActiveByKeyword(strings.ToUpper(strings.TrimSpace(keyword)))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	variant := resolveVariant(product, size)
	if variant == nil {
		return nil, ErrSizeNotFound
	}

	order := &models.Order{
		UserID:      userID,
		ProductID:   product.ID,
		Size:        variant.Size,
		Quantity:    quantity,
		TotalAmount: variant.Price * quantity,
		Status:      constants.OrderStatusConfirmed,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		variantRepo := s.variantRepo.WithTx(tx)
		ok, err := variantRepo.TryReserve(variant.ID, quantity)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSoldOut
		}
		return s.orderRepo.WithTx(tx).Create(order)
	})
	if err != nil {
		return nil, err
	}

	order.Product = product
	logger.Infow("order created",
		"order_id", order.ID,
		"user_id", userID,
		"keyword", product.Keyword,
		"size", order.Size,
		"quantity", quantity,
	)
	return order, nil
}

// variantKey 库存调整聚合键
type variantKey struct {
	productID uint
	size      string
}

// stockDelta 单个款式在一次批量操作内的净调整量
type stockDelta struct {
	reserve int
	release int
}

// collectDeltas 按款式聚合一批订单的库存调整量
func collectDeltas(deltas map[variantKey]*stockDelta, order *models.Order, reserve bool) {
	key := variantKey{productID: order.ProductID, size: order.Size}
	delta, ok := deltas[key]
	if !ok {
		delta = &stockDelta{}
		deltas[key] = delta
	}
	if reserve {
		delta.reserve += order.Quantity
	} else {
		delta.release += order.Quantity
	}
}

// applyDeltas 在事务内执行聚合后的库存调整。
// 款式已不存在时跳过账本操作，留给盘点修正。
func applyDeltas(variantRepo *repository.GormProductVariantRepository, deltas map[variantKey]*stockDelta) error {
	for key, delta := range deltas {
		variant, err := variantRepo.GetByProductAndSize(key.productID, key.size)
		if err != nil {
			return err
		}
		if variant == nil {
			logger.Warnw("variant missing during stock adjustment",
				"product_id", key.productID,
				"size", key.size,
			)
			continue
		}
		if delta.release > 0 {
			if err := variantRepo.Release(variant.ID, delta.release); err != nil {
				return err
			}
		}
		if delta.reserve > 0 {
			ok, err := variantRepo.TryReserve(variant.ID, delta.reserve)
			if err != nil {
				return err
			}
			if !ok {
				return ErrStockConflict
			}
		}
	}
	return nil
}

// BatchUpdateStatus 批量更新订单状态。
// 取消释放库存，恢复重新预占，预占失败整批回滚。
// 未命中的 ID 静默跳过，返回实际更新数。
func (s *OrderService) BatchUpdateStatus(ids []uint, status string, deleteReason *string) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyOrderIDs
	}
	if !constants.IsValidOrderStatus(status) {
		return 0, ErrInvalidStatus
	}

	var updated int
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)

		orders, err := orderRepo.ListByIDs(ids)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return nil
		}

		deltas := make(map[variantKey]*stockDelta)
		targetConsumes := constants.IsStockConsumingStatus(status)
		for i := range orders {
			wasConsuming := constants.IsStockConsumingStatus(orders[i].Status)
			switch {
			case wasConsuming && !targetConsumes:
				collectDeltas(deltas, &orders[i], false)
			case !wasConsuming && targetConsumes:
				collectDeltas(deltas, &orders[i], true)
			}
		}
		if err := applyDeltas(variantRepo, deltas); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status": status,
		}
		if status == constants.OrderStatusCancelled {
			if deleteReason != nil {
				updates["delete_reason"] = *deleteReason
			}
		} else {
			updates["delete_reason"] = nil
		}

		found := make([]uint, 0, len(orders))
		for i := range orders {
			found = append(found, orders[i].ID)
		}
		if err := orderRepo.UpdateFields(found, updates); err != nil {
			return err
		}
		updated = len(found)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// BatchDelete 批量硬删除订单，未取消的订单先归还库存，已取消的不再重复归还
func (s *OrderService) BatchDelete(ids []uint) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyOrderIDs
	}

	var deleted int
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)

		orders, err := orderRepo.ListByIDs(ids)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return nil
		}

		deltas := make(map[variantKey]*stockDelta)
		found := make([]uint, 0, len(orders))
		for i := range orders {
			found = append(found, orders[i].ID)
			if constants.IsStockConsumingStatus(orders[i].Status) {
				collectDeltas(deltas, &orders[i], false)
			}
		}
		if err := applyDeltas(variantRepo, deltas); err != nil {
			return err
		}
		if err := orderRepo.DeleteByIDs(found); err != nil {
			return err
		}
		deleted = len(found)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// SetArchived 批量归档或取消归档，不触碰库存
func (s *OrderService) SetArchived(ids []uint, archived bool) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyOrderIDs
	}

	orders, err := s.orderRepo.ListByIDs(ids)
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}
	found := make([]uint, 0, len(orders))
	for i := range orders {
		found = append(found, orders[i].ID)
	}
	if err := s.orderRepo.UpdateFields(found, map[string]interface{}{
		"is_archived": archived,
	}); err != nil {
		return 0, err
	}
	return len(found), nil
}

// ListOrders 管理端订单列表
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, error) {
	return s.orderRepo.ListAdmin(filter)
}

// QueryUserOrders 查询用户进行中的订单，返回明细与总额
func (s *OrderService) QueryUserOrders(userID uint) ([]models.Order, int, error) {
	orders, err := s.orderRepo.ListActiveByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	var total int
	for i := range orders {
		total += orders[i].TotalAmount
	}
	return orders, total, nil
}
