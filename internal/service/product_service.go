package service

import (
	"strings"

	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/logger"
	"github.com/groupbuy-next/internal/models"
	"github.com/groupbuy-next/internal/repository"

	"gorm.io/gorm"
)

// VariantInput 款式定义输入
type VariantInput struct {
	Size  string `json:"size"`
	Price int    `json:"price"`
	Stock *int   `json:"stock"`
}

// ProductInput 商品创建与更新输入
type ProductInput struct {
	Keyword     string         `json:"keyword"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Status      string         `json:"status"`
	Variants    []VariantInput `json:"variants"`
}

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// normalizeVariants 校验并规范化款式定义，尺寸去重且不可为空
func normalizeVariants(inputs []VariantInput) ([]models.ProductVariant, error) {
	variants := make([]models.ProductVariant, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, input := range inputs {
		size := strings.TrimSpace(input.Size)
		if size == "" || input.Price < 0 {
			return nil, ErrInvalidVariant
		}
		if input.Stock != nil && *input.Stock < 0 {
			return nil, ErrInvalidVariant
		}
		if seen[size] {
			return nil, ErrInvalidVariant
		}
		seen[size] = true
		variants = append(variants, models.ProductVariant{
			Size:  size,
			Price: input.Price,
			Stock: input.Stock,
		})
	}
	return variants, nil
}

// List 商品列表，status 为空时返回全部
func (s *ProductService) List(status string) ([]models.Product, error) {
	return s.productRepo.List(status)
}

// Get 商品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品及其款式，代号在上架商品中必须唯一
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	keyword := strings.ToUpper(strings.TrimSpace(input.Keyword))
	name := strings.TrimSpace(input.Name)
	if keyword == "" || name == "" {
		return nil, ErrInvalidVariant
	}
	variants, err := normalizeVariants(input.Variants)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = constants.ProductStatusActive
	}
	if status == constants.ProductStatusActive {
		exists, err := s.productRepo.ExistsActiveKeyword(keyword, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrKeywordConflict
		}
	}

	description := input.Description
	if description != nil && *description == "" {
		description = nil
	}
	product := &models.Product{
		Keyword:     keyword,
		Name:        name,
		Description: description,
		Status:      status,
		Variants:    variants,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品并整体替换款式集合
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	keyword := strings.ToUpper(strings.TrimSpace(input.Keyword))
	if keyword == "" {
		keyword = product.Keyword
	}
	status := input.Status
	if status == "" {
		status = product.Status
	}
	if status == constants.ProductStatusActive {
		exists, err := s.productRepo.ExistsActiveKeyword(keyword, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrKeywordConflict
		}
	}
	variants, err := normalizeVariants(input.Variants)
	if err != nil {
		return nil, err
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)

		updates := map[string]interface{}{
			"keyword": keyword,
			"status":  status,
		}
		if name := strings.TrimSpace(input.Name); name != "" {
			updates["name"] = name
		}
		if input.Description != nil {
			if *input.Description == "" {
				updates["description"] = nil
			} else {
				updates["description"] = *input.Description
			}
		}
		if err := productRepo.Update(id, updates); err != nil {
			return err
		}

		// 款式整体替换，不做增量比对
		if err := variantRepo.DeleteByProduct(id); err != nil {
			return err
		}
		for i := range variants {
			variants[i].ProductID = id
		}
		return variantRepo.CreateBatch(variants)
	})
	if err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(id)
}

// Delete 删除商品及其款式
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.variantRepo.WithTx(tx).DeleteByProduct(id); err != nil {
			return err
		}
		return s.productRepo.WithTx(tx).Delete(id)
	})
}

// UpsertFromChat 处理聊天上架指令：同代号上架商品存在则更新并整体替换款式，
// 否则创建新的上架商品
func (s *ProductService) UpsertFromChat(intent UploadIntent) (*models.Product, error) {
	existing, err := s.productRepo.GetActiveByKeyword(intent.Keyword)
	if err != nil {
		return nil, err
	}

	variants := make([]VariantInput, 0, len(intent.Sizes))
	for _, entry := range intent.Sizes {
		variants = append(variants, VariantInput{Size: entry.Size, Price: entry.Price})
	}
	if len(variants) == 0 {
		variants = append(variants, VariantInput{Size: constants.DefaultFreeSize})
	}

	description := intent.Description
	input := ProductInput{
		Keyword:     intent.Keyword,
		Name:        intent.Name,
		Description: &description,
		Status:      constants.ProductStatusActive,
		Variants:    variants,
	}

	if existing != nil {
		return s.Update(existing.ID, input)
	}
	product, err := s.Create(input)
	if err != nil {
		return nil, err
	}
	logger.Infow("product uploaded from chat", "keyword", product.Keyword, "variants", len(product.Variants))
	return product, nil
}

// RecountSold 按未取消订单重新盘点全部款式的已售数
func (s *ProductService) RecountSold() error {
	return s.variantRepo.RecountSold()
}
