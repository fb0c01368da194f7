package repository

import (
	"errors"

	"github.com/groupbuy-next/internal/constants"
	"github.com/groupbuy-next/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByLineID(lineID string) (*models.User, error)
	Create(user *models.User) error
	UpdateProfile(id uint, name, avatarURL string) error
	ListCustomers(keyword string) ([]models.User, error)
	WithTx(tx *gorm.DB) *GormUserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) *GormUserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByLineID 根据 LINE 用户标识获取用户
func (r *GormUserRepository) GetByLineID(lineID string) (*models.User, error) {
	if lineID == "" {
		return nil, errors.New("invalid line id")
	}
	var user models.User
	if err := r.db.Where("line_id = ?", lineID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// UpdateProfile 更新用户资料快照
func (r *GormUserRepository) UpdateProfile(id uint, name, avatarURL string) error {
	if id == 0 {
		return errors.New("invalid user id")
	}
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       name,
			"avatar_url": avatarURL,
		}).Error
}

// ListCustomers 获取客户列表（仅 CUSTOMER 角色），可按名称模糊过滤
func (r *GormUserRepository) ListCustomers(keyword string) ([]models.User, error) {
	var users []models.User
	query := r.db.Model(&models.User{}).Where("role = ?", constants.UserRoleCustomer)
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
